package models

import "encoding/json"

// GameDota2 is the game label attached to every normalized match
const GameDota2 = "Dota 2"

// Match is the UI-facing shape of a single upstream match record
type Match struct {
    ID      json.RawMessage `json:"id"`
    Game    string          `json:"game"`
    League  string          `json:"league"`
    Series  string          `json:"series"`
    Team1   string          `json:"team1"`
    Team2   string          `json:"team2"`
    Status  string          `json:"status"`
    Score   string          `json:"score"`
    BeginAt *string         `json:"begin_at"`
    Raw     json.RawMessage `json:"raw"`
}

// MatchList is the cached payload of an endpoint
type MatchList struct {
    Count int     `json:"count"`
    Items []Match `json:"items"`
}

// NewMatchList wraps items, never leaving Items nil so it encodes as []
func NewMatchList(items []Match) *MatchList {
    if items == nil {
        items = []Match{}
    }
    return &MatchList{
        Count: len(items),
        Items: items,
    }
}

// MatchResponse is the body returned by the match endpoints
type MatchResponse struct {
    FromCache bool    `json:"fromCache"`
    Count     int     `json:"count"`
    Items     []Match `json:"items"`
}

// NewMatchResponse tags a payload with its cache origin
func NewMatchResponse(list *MatchList, fromCache bool) MatchResponse {
    return MatchResponse{
        FromCache: fromCache,
        Count:     list.Count,
        Items:     list.Items,
    }
}
