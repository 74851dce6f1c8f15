package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/platypussharry/physician-salary-dashboard-sub000/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

var configEnvVars = []string{
	"SALARY_CONFIG",
	"SALARY_ADDR",
	"SALARY_LOG_LEVEL",
	"SALARY_STORE_DRIVER",
	"SALARY_STORE_URL",
	"SALARY_STORE_PAGE_SIZE",
	"SALARY_STORE_MAX_RETRY_MS",
	"SALARY_DATASET_PATH",
	"SALARY_DATABASE_URL",
	"SALARY_MIN_COHORT_SIZE",
}

func clearConfigEnvVars() {
	for _, k := range configEnvVars {
		_ = os.Unsetenv(k)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.StoreDriver, convey.ShouldEqual, config.DriverMemory)
				convey.So(cfg.StoreTable, convey.ShouldEqual, "salary_submissions")
				convey.So(cfg.StorePageSize, convey.ShouldEqual, 1000)
				convey.So(cfg.MinCohortSize, convey.ShouldEqual, 3)
				convey.So(cfg.RecentLimit, convey.ShouldEqual, 10)
				convey.So(cfg.StoreMaxRetry(), convey.ShouldEqual, 10*time.Second)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("SALARY_ADDR", ":8080")
			_ = os.Setenv("SALARY_STORE_DRIVER", "REST")
			_ = os.Setenv("SALARY_STORE_URL", "https://example.supabase.co/rest/v1")
			_ = os.Setenv("SALARY_STORE_PAGE_SIZE", "500")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.StoreDriver, convey.ShouldEqual, config.DriverREST)
				convey.So(cfg.StoreURL, convey.ShouldEqual, "https://example.supabase.co/rest/v1")
				convey.So(cfg.StorePageSize, convey.ShouldEqual, 500)
			})
		})

		convey.Convey("When loading config with a YAML file and env overrides", func() {
			path := createTempConfigFile(t, `
addr: ":9090"
store_driver: file
dataset_path: /data/salaries.xlsx
min_cohort_size: 5
state_tax_rates:
  Texas: 0
  Oregon: 9.9
`)
			_ = os.Setenv("SALARY_CONFIG", path)
			_ = os.Setenv("SALARY_MIN_COHORT_SIZE", "4")

			cfg, err := config.Load(ctx)

			convey.Convey("Then env wins over the file and the file over defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.StoreDriver, convey.ShouldEqual, config.DriverFile)
				convey.So(cfg.DatasetPath, convey.ShouldEqual, "/data/salaries.xlsx")
				convey.So(cfg.MinCohortSize, convey.ShouldEqual, 4)
				convey.So(cfg.StateTaxRates["Oregon"], convey.ShouldEqual, 9.9)
				convey.So(cfg.RecentLimit, convey.ShouldEqual, 10)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			_ = os.Setenv("SALARY_CONFIG", createTempConfigFile(t, `invalid: yaml: content: [`))

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("SALARY_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(cfg, convey.ShouldBeNil)
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("SALARY_ADDR", "")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When a driver is missing its location", func() {
			for _, driver := range []string{"file", "rest", "postgres"} {
				_ = os.Setenv("SALARY_STORE_DRIVER", driver)
				_, err := config.Load(ctx)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			}

			_ = os.Setenv("SALARY_STORE_DRIVER", "mongo")
			_, err := config.Load(ctx)
			convey.So(err.Error(), convey.ShouldContainSubstring, "unknown store_driver")
		})
	})
}
