package matches

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esports-live/pkg/models"
)

func TestNormalizeLive_Empty(t *testing.T) {
	list := models.NewMatchList(NormalizeLive([]byte(`[]`)))

	assert.Equal(t, 0, list.Count)
	assert.Empty(t, list.Items)

	data, err := json.Marshal(list)
	require.NoError(t, err)
	assert.JSONEq(t, `{"count":0,"items":[]}`, string(data))
}

func TestNormalizeLive_DefaultsAndStatus(t *testing.T) {
	items := NormalizeLive([]byte(`[{"match_id":1,"radiant_score":3,"dire_score":5,"game_time":125}]`))
	require.Len(t, items, 1)

	m := items[0]
	assert.JSONEq(t, `1`, string(m.ID))
	assert.Equal(t, "Dota 2", m.Game)
	assert.Equal(t, "", m.League)
	assert.Equal(t, "", m.Series)
	assert.Equal(t, "Radiant", m.Team1)
	assert.Equal(t, "Dire", m.Team2)
	assert.Equal(t, "Live • 2m", m.Status)
	assert.Equal(t, "3 - 5", m.Score)
	assert.Nil(t, m.BeginAt)
	assert.JSONEq(t, `{"match_id":1,"radiant_score":3,"dire_score":5,"game_time":125}`, string(m.Raw))
}

func TestNormalizeLive_Fields(t *testing.T) {
	body := `[{
		"match_id": 7712345678,
		"league_name": "The International",
		"team_name_radiant": "Team Spirit",
		"team_name_dire": "Gaimin Gladiators",
		"radiant_score": 21,
		"dire_score": 17,
		"game_time": 2399
	}]`

	items := NormalizeLive([]byte(body))
	require.Len(t, items, 1)
	assert.Equal(t, "The International", items[0].League)
	assert.Equal(t, "Team Spirit", items[0].Team1)
	assert.Equal(t, "Gaimin Gladiators", items[0].Team2)
	assert.Equal(t, "21 - 17", items[0].Score)
	assert.Equal(t, "Live • 39m", items[0].Status)
	assert.JSONEq(t, `7712345678`, string(items[0].ID))
}

func TestLiveStatus(t *testing.T) {
	tests := []struct {
		name   string
		record string
		want   string
	}{
		{"missing game time", `{}`, "Live"},
		{"null game time", `{"game_time":null}`, "Live"},
		{"zero game time", `{"game_time":0}`, "Live"},
		{"negative game time clamps", `{"game_time":-90}`, "Live • 0m"},
		{"under a minute", `{"game_time":59}`, "Live • 0m"},
		{"exact minute", `{"game_time":60}`, "Live • 1m"},
		{"fractional seconds", `{"game_time":185.7}`, "Live • 3m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := NormalizeLive([]byte("[" + tt.record + "]"))
			require.Len(t, items, 1)
			assert.Equal(t, tt.want, items[0].Status)
		})
	}
}

func TestNormalizeLive_FallbacksOnEmptyOrNull(t *testing.T) {
	items := NormalizeLive([]byte(`[{"league_name":null,"team_name_radiant":"","team_name_dire":null,"radiant_score":null}]`))
	require.Len(t, items, 1)

	assert.Equal(t, "", items[0].League)
	assert.Equal(t, "Radiant", items[0].Team1)
	assert.Equal(t, "Dire", items[0].Team2)
	assert.Equal(t, "0 - 0", items[0].Score)
	assert.Nil(t, items[0].ID)

	data, err := json.Marshal(items[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"id":null`)
	assert.Contains(t, string(data), `"begin_at":null`)
}

func TestNormalize_MalformedPayload(t *testing.T) {
	for _, body := range []string{`{"error":"rate limited"}`, `null`, `"text"`, `not json`, ``} {
		assert.Empty(t, NormalizeLive([]byte(body)), body)
		assert.Empty(t, NormalizePro([]byte(body)), body)
	}
}

func TestNormalize_SkipsNonObjectElements(t *testing.T) {
	items := NormalizeLive([]byte(`[1, "x", null, {"match_id": 5}, []]`))
	require.Len(t, items, 1)
	assert.JSONEq(t, `5`, string(items[0].ID))
}

func proBody(n int) []byte {
	records := make([]string, n)
	for i := range records {
		records[i] = fmt.Sprintf(`{"match_id":%d,"radiant_name":"R%d","dire_name":"D%d","league_name":"DPC","radiant_score":%d,"dire_score":1}`, i, i, i, i)
	}
	return []byte("[" + strings.Join(records, ",") + "]")
}

func TestNormalizePro_CapsAndKeepsOrder(t *testing.T) {
	items := NormalizePro(proBody(25))
	require.Len(t, items, MaxRecentMatches)

	for i, m := range items {
		assert.JSONEq(t, fmt.Sprint(i), string(m.ID))
		assert.Equal(t, "Finished", m.Status)
		assert.Equal(t, fmt.Sprintf("R%d", i), m.Team1)
		assert.Equal(t, fmt.Sprintf("D%d", i), m.Team2)
		assert.Equal(t, fmt.Sprintf("%d - 1", i), m.Score)
		assert.Equal(t, "DPC", m.League)
	}
}

func TestNormalizePro_IgnoresGameTimeAndLiveNames(t *testing.T) {
	items := NormalizePro([]byte(`[{"game_time":600,"team_name_radiant":"A","team_name_dire":"B"}]`))
	require.Len(t, items, 1)

	assert.Equal(t, "Finished", items[0].Status)
	assert.Equal(t, "Radiant", items[0].Team1)
	assert.Equal(t, "Dire", items[0].Team2)
	assert.Equal(t, "0 - 0", items[0].Score)
}
