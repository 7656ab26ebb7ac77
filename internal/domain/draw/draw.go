// Package draw implements the weighted pack draw: the catalog is split into
// a high tier and a standard tier by rating, the high tier is hit with a
// configured probability, and the chosen template is minted into a fresh
// owned instance.
package draw

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/futpack/internal/domain/model"
)

// Default tier split: templates rated DefaultHighTierFloor and above are
// drawn with probability DefaultHighTierOdds.
const (
	DefaultHighTierOdds  = 0.10
	DefaultHighTierFloor = 88
)

const (
	instanceIDPrefix = "p"
	idSuffixLen      = 8
)

// Picker selects pack templates from a catalog. Safe for concurrent use:
// the underlying rand source is not, so draws serialize on a mutex.
type Picker struct {
	mu            sync.Mutex
	rng           *rand.Rand
	highTierOdds  float64
	highTierFloor int
}

// NewPicker creates a picker with configuration options.
func NewPicker(opts ...Option) *Picker {
	p := &Picker{
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // draw odds, not crypto
		highTierOdds:  DefaultHighTierOdds,
		highTierFloor: DefaultHighTierFloor,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Pick selects one template from catalog. The high tier (rating >= floor)
// is chosen with the configured odds, the standard tier otherwise; an empty
// chosen tier falls back to a uniform draw over the whole catalog. Returns
// false when the catalog is empty.
func (p *Picker) Pick(catalog []model.Player) (model.Player, bool) {
	if len(catalog) == 0 {
		return model.Player{}, false
	}

	var high, standard []model.Player
	for _, entry := range catalog {
		if entry.Rating >= p.highTierFloor {
			high = append(high, entry)
		} else {
			standard = append(standard, entry)
		}
	}

	p.mu.Lock()
	roll := p.rng.Float64()
	tier := standard
	if roll < p.highTierOdds {
		tier = high
	}
	if len(tier) == 0 {
		tier = catalog
	}
	idx := p.rng.Intn(len(tier))
	p.mu.Unlock()

	return tier[idx], true
}

// Mint copies a template into a new owned instance with a fresh id, zeroed
// play statistics, and an empty vote map. The id combines the draw time with
// a random suffix so it never collides with a catalog id or another instance.
func Mint(template model.Player, now time.Time) model.Instance {
	inst := model.Instance{
		ID:         newInstanceID(now),
		TemplateID: template.ID,
		Name:       template.Name,
		Position:   template.Position,
		Rating:     template.Rating,
		Role:       template.Role,
		Image:      template.Image,
		Nation:     template.Nation,
		Club:       template.Club,
		CardType:   template.CardType,
		DrawnAt:    now,
	}

	// Snapshot the stat block rather than aliasing the template's pointer.
	if template.Outfield != nil {
		stats := *template.Outfield
		inst.Outfield = &stats
	}
	if template.Keeper != nil {
		stats := *template.Keeper
		inst.Keeper = &stats
	}

	return inst
}

func newInstanceID(now time.Time) string {
	suffix := uuid.NewString()[:idSuffixLen]
	return fmt.Sprintf("%s_%d_%s", instanceIDPrefix, now.UnixMilli(), suffix)
}
