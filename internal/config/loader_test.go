package config_test

import (
	"os"
	"testing"

	"github.com/okian/wclscrape/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.OutputDir, convey.ShouldEqual, "logs")
				convey.So(cfg.PageLimit, convey.ShouldEqual, 500)
				convey.So(cfg.Workers, convey.ShouldEqual, 1)
				convey.So(cfg.ReportCode, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("WCL_REPORT_CODE", "abc123")
			_ = os.Setenv("WCL_ACCESS_TOKEN", "tok")
			_ = os.Setenv("WCL_CLIENT_ID", "cid")
			_ = os.Setenv("WCL_CLIENT_SECRET", "csecret")
			_ = os.Setenv("WCL_WORKERS", "4")
			_ = os.Setenv("WCL_DEATH_WINDOW_MS", "2500")
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.ReportCode, convey.ShouldEqual, "abc123")
				convey.So(cfg.AccessToken, convey.ShouldEqual, "tok")
				convey.So(cfg.ClientID, convey.ShouldEqual, "cid")
				convey.So(cfg.ClientSecret, convey.ShouldEqual, "csecret")
				convey.So(cfg.Workers, convey.ShouldEqual, 4)
				convey.So(cfg.DeathWindowMS, convey.ShouldEqual, int64(2500))
				convey.So(cfg.Validate(), convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
# report to scrape
report_code: "fromfile"
output_dir: "out"
page_limit: 100
workers: 2
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("WCL_CONFIG", tmpFile)
			_ = os.Setenv("WCL_WORKERS", "8")
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.ReportCode, convey.ShouldEqual, "fromfile")
				convey.So(cfg.OutputDir, convey.ShouldEqual, "out")
				convey.So(cfg.PageLimit, convey.ShouldEqual, 100)
				convey.So(cfg.Workers, convey.ShouldEqual, 8)
				convey.So(cfg.DeathSample, convey.ShouldEqual, 3)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("WCL_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("WCL_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("WCL_PAGE_LIMIT", "lots")
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"WCL_CONFIG",
		"WCL_REPORT_CODE",
		"WCL_ACCESS_TOKEN",
		"WCL_CLIENT_ID",
		"WCL_CLIENT_SECRET",
		"WCL_WORKERS",
		"WCL_DEATH_WINDOW_MS",
		"WCL_PAGE_LIMIT",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "wcl-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
