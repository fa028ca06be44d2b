package wcl

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// maxEndTime spans the whole report when requesting a fight's events.
const maxEndTime int64 = 999_999_999_999

// SessionQuery asks for the report title, every fight and the player actors.
func SessionQuery(code string) string {
	return fmt.Sprintf(`query {
  reportData {
    report(code: %s) {
      title
      fights {
        id
        name
        kill
        fightPercentage
        encounterID
        startTime
        endTime
      }
      masterData {
        actors(type: "Player") {
          id
          name
          type
        }
      }
    }
  }
}`, quote(code))
}

// DeathsQuery asks for one page of death events scoped to a single fight.
func DeathsQuery(code string, fightID, limit int) string {
	return fmt.Sprintf(`query {
  reportData {
    report(code: %s) {
      events(dataType: Deaths, fightIDs: [%d], startTime: 0, endTime: %d, limit: %d) {
        data
        nextPageTimestamp
      }
    }
  }
}`, quote(code), fightID, maxEndTime, limit)
}

// quote renders s as a GraphQL string literal. JSON string escaping is a
// subset of what GraphQL accepts.
func quote(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		return `""`
	}
	return string(b)
}
