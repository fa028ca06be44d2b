package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/wclscrape/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func validConfig() *config.Config {
	cfg := config.New()
	cfg.ReportCode = "vkpJ2qRdrGAWFQaV"
	cfg.AccessToken = "token"
	cfg.ClientID = "id"
	cfg.ClientSecret = "secret"
	return cfg
}

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.APIURL, convey.ShouldEqual, "https://www.warcraftlogs.com/api/v2/client")
			convey.So(cfg.SiteURL, convey.ShouldEqual, "https://www.warcraftlogs.com")
			convey.So(cfg.OutputDir, convey.ShouldEqual, "logs")
			convey.So(cfg.PageLimit, convey.ShouldEqual, 500)
			convey.So(cfg.DeathSample, convey.ShouldEqual, 3)
			convey.So(cfg.DeathWindow(), convey.ShouldEqual, 5*time.Second)
			convey.So(cfg.RequestTimeout(), convey.ShouldEqual, time.Duration(0))
			convey.So(cfg.Workers, convey.ShouldEqual, 1)
		})

		convey.Convey("Then validation should report every missing credential", func() {
			err := cfg.Validate()
			convey.So(errors.Is(err, config.ErrMissingConfig), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "report_code")
			convey.So(err.Error(), convey.ShouldContainSubstring, "access_token")
			convey.So(err.Error(), convey.ShouldContainSubstring, "client_id")
			convey.So(err.Error(), convey.ShouldContainSubstring, "client_secret")
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given a config with credentials", t, func() {
		cfg := validConfig()

		convey.Convey("Then it should validate", func() {
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("When workers is zero", func() {
			cfg.Workers = 0
			convey.Convey("Then it should be invalid", func() {
				convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When page_limit is zero", func() {
			cfg.PageLimit = 0
			convey.Convey("Then it should be invalid", func() {
				convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the timeout is negative", func() {
			cfg.RequestTimeoutMS = -1
			convey.Convey("Then it should be invalid", func() {
				convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the timezone is unknown", func() {
			cfg.Timezone = "Mars/Olympus_Mons"
			convey.Convey("Then it should be invalid", func() {
				convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the timezone is UTC", func() {
			cfg.Timezone = "UTC"
			loc, err := cfg.Location()
			convey.Convey("Then it should resolve", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(loc, convey.ShouldEqual, time.UTC)
			})
		})
	})
}
