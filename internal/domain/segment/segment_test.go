package segment_test

import (
	"testing"

	"github.com/okian/wclscrape/internal/domain/model"
	"github.com/okian/wclscrape/internal/domain/segment"
	"github.com/smartystreets/goconvey/convey"
)

func TestSelect(t *testing.T) {
	convey.Convey("Given trash, boss and malformed fights", t, func() {
		segments := []model.Segment{
			{ID: 1, Name: "Trash", EncounterID: 0},
			{ID: 2, Name: "Guardian", EncounterID: 2902},
			{ID: 3, Name: "Broken", EncounterID: -1},
			{ID: 4, Name: "Queen", EncounterID: 2922},
		}

		selected := segment.Select(segments)

		convey.Convey("Then only encounters remain, in order", func() {
			convey.So(len(selected), convey.ShouldEqual, 2)
			convey.So(selected[0].ID, convey.ShouldEqual, 2)
			convey.So(selected[1].ID, convey.ShouldEqual, 4)
			for _, s := range selected {
				convey.So(s.EncounterID, convey.ShouldBeGreaterThan, 0)
			}
		})
	})

	convey.Convey("Given no encounters", t, func() {
		convey.So(segment.Select([]model.Segment{{ID: 1}}), convey.ShouldBeEmpty)
		convey.So(segment.Select(nil), convey.ShouldBeEmpty)
	})
}
