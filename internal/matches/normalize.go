// Package matches turns upstream OpenDota match lists into the UI schema and
// serves them through the cache.
package matches

import (
	"encoding/json"
	"fmt"
	"math"

	"esports-live/pkg/models"
)

const (
	// MaxRecentMatches caps the recent pro matches list
	MaxRecentMatches = 20

	StatusLive     = "Live"
	StatusFinished = "Finished"

	defaultRadiant = "Radiant"
	defaultDire    = "Dire"
)

type record map[string]json.RawMessage

// decodeRecords splits body into object records. A body that is not a JSON
// array yields no records; array elements that are not objects are skipped.
func decodeRecords(body []byte) ([]json.RawMessage, []record) {
	var elems []json.RawMessage
	if err := json.Unmarshal(body, &elems); err != nil {
		return nil, nil
	}

	raws := make([]json.RawMessage, 0, len(elems))
	recs := make([]record, 0, len(elems))
	for _, elem := range elems {
		var rec record
		if err := json.Unmarshal(elem, &rec); err != nil || rec == nil {
			continue
		}
		raws = append(raws, elem)
		recs = append(recs, rec)
	}
	return raws, recs
}

// NormalizeLive maps the /live payload into matches
func NormalizeLive(body []byte) []models.Match {
	raws, recs := decodeRecords(body)
	items := make([]models.Match, 0, len(recs))
	for i, rec := range recs {
		items = append(items, models.Match{
			ID:     rec.id(),
			Game:   models.GameDota2,
			League: rec.str("league_name"),
			Series: "",
			Team1:  rec.strOr("team_name_radiant", defaultRadiant),
			Team2:  rec.strOr("team_name_dire", defaultDire),
			Status: liveStatus(rec),
			Score:  rec.score(),
			Raw:    raws[i],
		})
	}
	return items
}

// NormalizePro maps the /proMatches payload, keeping the first MaxRecentMatches
func NormalizePro(body []byte) []models.Match {
	raws, recs := decodeRecords(body)
	if len(recs) > MaxRecentMatches {
		raws, recs = raws[:MaxRecentMatches], recs[:MaxRecentMatches]
	}

	items := make([]models.Match, 0, len(recs))
	for i, rec := range recs {
		items = append(items, models.Match{
			ID:     rec.id(),
			Game:   models.GameDota2,
			League: rec.str("league_name"),
			Series: "",
			Team1:  rec.strOr("radiant_name", defaultRadiant),
			Team2:  rec.strOr("dire_name", defaultDire),
			Status: StatusFinished,
			Score:  rec.score(),
			Raw:    raws[i],
		})
	}
	return items
}

// liveStatus formats elapsed game time in whole minutes. Missing, null or
// zero game_time gives plain "Live"; negative (draft phase) clamps to 0m.
func liveStatus(rec record) string {
	gameTime, ok := rec.num("game_time")
	if !ok || gameTime == 0 {
		return StatusLive
	}
	minutes := int64(math.Floor(math.Max(gameTime, 0) / 60))
	return fmt.Sprintf("%s • %dm", StatusLive, minutes)
}

func (r record) id() json.RawMessage {
	if raw, ok := r["match_id"]; ok {
		return raw
	}
	return nil
}

func (r record) str(key string) string {
	raw, ok := r[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func (r record) strOr(key, fallback string) string {
	if s := r.str(key); s != "" {
		return s
	}
	return fallback
}

func (r record) num(key string) (float64, bool) {
	raw, ok := r[key]
	if !ok {
		return 0, false
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil || n == "" {
		return 0, false
	}
	f, err := n.Float64()
	if err != nil {
		return 0, false
	}
	return f, true
}

func (r record) whole(key string) int64 {
	f, ok := r.num(key)
	if !ok {
		return 0
	}
	return int64(f)
}

func (r record) score() string {
	return fmt.Sprintf("%d - %d", r.whole("radiant_score"), r.whole("dire_score"))
}
