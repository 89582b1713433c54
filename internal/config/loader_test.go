package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/eventified/eventified/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad(t *testing.T) {
	Convey("Given environment-driven configuration", t, func() {
		ctx := context.Background()

		// t.Setenv only restores at test end, but Convey re-runs this block
		// for every leaf; scope each override to its branch via Reset.
		setenv := func(key, value string) {
			old, had := os.LookupEnv(key)
			So(os.Setenv(key, value), ShouldBeNil)
			Reset(func() {
				if had {
					_ = os.Setenv(key, old)
				} else {
					_ = os.Unsetenv(key)
				}
			})
		}

		Convey("When no overrides are set", func() {
			cfg, err := config.Load(ctx)

			Convey("Then defaults apply", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":8080")
				So(cfg.DefaultRecommendationLimit, ShouldEqual, 10)
			})
		})

		Convey("When env vars override defaults", func() {
			setenv("EVENTIFIED_ADDR", ":9999")
			setenv("EVENTIFIED_QUEUE_SIZE", "512")
			cfg, err := config.Load(ctx)

			Convey("Then the overrides win", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":9999")
				So(cfg.QueueSize, ShouldEqual, 512)
			})
		})

		Convey("When a config file is provided", func() {
			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			body := []byte("addr: \":7070\"\nworker_count: 3\nmax_recommendation_limit: 25\n")
			So(os.WriteFile(path, body, 0o600), ShouldBeNil)
			setenv("EVENTIFIED_CONFIG", path)

			cfg, err := config.Load(ctx)

			Convey("Then file values override defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":7070")
				So(cfg.WorkerCount, ShouldEqual, 3)
				So(cfg.MaxRecommendationLimit, ShouldEqual, 25)
			})

			Convey("Then env still wins over the file", func() {
				setenv("EVENTIFIED_ADDR", ":6060")
				cfg, err := config.Load(ctx)
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":6060")
			})
		})

		Convey("When the config file is missing", func() {
			setenv("EVENTIFIED_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
			_, err := config.Load(ctx)

			Convey("Then loading fails with the load sentinel", func() {
				So(err, ShouldWrap, config.ErrLoadConfig)
			})
		})

		Convey("When validation fails", func() {
			setenv("EVENTIFIED_DEFAULT_RECOMMENDATION_LIMIT", "0")
			_, err := config.Load(ctx)

			Convey("Then the invalid sentinel surfaces", func() {
				So(err, ShouldWrap, config.ErrInvalidConfig)
			})
		})
	})
}
