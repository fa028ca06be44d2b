package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/wclscrape/internal/config"
	"github.com/okian/wclscrape/pkg/logger"
	"github.com/okian/wclscrape/pkg/metrics"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(logger.WithWriter(os.Stderr)); err != nil {
		panic(err)
	}
}

func testConfig(apiURL, dir string) *config.Config {
	cfg := config.New()
	cfg.APIURL = apiURL
	cfg.ReportCode = "abc"
	cfg.AccessToken = "token"
	cfg.ClientID = "id"
	cfg.ClientSecret = "secret"
	cfg.OutputDir = dir
	cfg.Timezone = "UTC"
	return cfg
}

func TestBuildService(t *testing.T) {
	convey.Convey("Given a valid configuration and a reachable API", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data":{"reportData":{"report":{"title":"Mythic Night","fights":[
				{"id":4,"name":"Queen","kill":true,"fightPercentage":0,"encounterID":2922,"startTime":0}
			],"masterData":{"actors":[]}}}}}`))
		}))
		defer srv.Close()

		dir := t.TempDir()
		cfg := testConfig(srv.URL, dir)
		convey.So(cfg.Validate(), convey.ShouldBeNil)

		m := metrics.NewManager()
		svc, err := buildService(context.Background(), cfg, logger.Get(), m)
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("When the service runs", func() {
			res, err := svc.Run(context.Background())

			convey.Convey("Then the document lands in the output directory", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(filepath.Dir(res.Path), convey.ShouldEqual, dir)
				convey.So(strings.HasSuffix(res.Path, "_Mythic_Night_Fights.json"), convey.ShouldBeTrue)
				_, statErr := os.Stat(res.Path)
				convey.So(statErr, convey.ShouldBeNil)
			})

			convey.Convey("Then the metrics file can be exported", func() {
				path := filepath.Join(dir, "metrics.prom")
				convey.So(m.WriteTextfile(path), convey.ShouldBeNil)
				raw, err := os.ReadFile(path)
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(raw), convey.ShouldContainSubstring, "wcl_scrape_documents_written_total")
			})
		})
	})

	convey.Convey("Given an unknown timezone", t, func() {
		cfg := testConfig("http://127.0.0.1:0", t.TempDir())
		cfg.Timezone = "Mars/Olympus"

		_, err := buildService(context.Background(), cfg, logger.Get(), metrics.NewManager())

		convey.So(err, convey.ShouldNotBeNil)
	})
}
