package main

import (
	"context"
	"net/http"
	"os"
	"testing"

	"github.com/okian/futpack/internal/adapters/http/api"
	repository "github.com/okian/futpack/internal/adapters/repository"
	app "github.com/okian/futpack/internal/app"
	"github.com/okian/futpack/internal/config"
	"github.com/okian/futpack/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("FUTPACK_ADDR", ":8080")
			_ = os.Setenv("FUTPACK_PACK_PRICE", "2")
			defer func() {
				_ = os.Unsetenv("FUTPACK_ADDR")
				_ = os.Unsetenv("FUTPACK_PACK_PRICE")
			}()

			cfg, err := config.Load(context.Background())

			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
			convey.So(cfg.PackPrice, convey.ShouldEqual, 2)
		})

		convey.Convey("When wiring the service and routes", func() {
			ctx := context.Background()
			store := repository.NewMemStore(ctx)
			svc := app.New(store)

			mux := http.NewServeMux()
			server := api.NewServer(svc, svc)
			server.Register(ctx, mux)

			convey.So(server, convey.ShouldNotBeNil)
		})
	})
}
