package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type card struct {
	Key               string `json:"key"`
	Rank              string `json:"rank"`
	TopRanked         bool   `json:"top_ranked"`
	Calories          float64
	Protein           float64
	Ratio             *int   `json:"ratio"`
	RatioLabel        string `json:"ratio_label"`
	SelectedVariantID string `json:"selected_variant_id"`
}

type section struct {
	ID    string `json:"id"`
	Top   int    `json:"top"`
	Items []card `json:"items"`
}

func TestGetMenu(t *testing.T) {
	router := setupRestaurantRouter(t)

	code, resp := get(t, router, "/restaurants/mcdonalds/menu")
	assert.Equal(t, http.StatusOK, code)
	var items []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &items))
	require.NotEmpty(t, items)
	assert.Equal(t, "Quarter Pounder with Cheese", items[0].Name)
	assert.Equal(t, len(items), *resp.Count)

	code, _ = get(t, router, "/restaurants/tacobell/menu")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestGetRankings(t *testing.T) {
	router := setupRestaurantRouter(t)

	code, resp := get(t, router, "/restaurants/chickfila/rankings")
	require.Equal(t, http.StatusOK, code)

	var body struct {
		Restaurant struct {
			ID string `json:"id"`
		} `json:"restaurant"`
		Sections []section `json:"sections"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &body))
	assert.Equal(t, "chickfila", body.Restaurant.ID)
	require.Len(t, body.Sections, 3)
	assert.Equal(t, "high-protein", body.Sections[0].ID)
	assert.Equal(t, "best-protein-ratio", body.Sections[1].ID)
	assert.Equal(t, "lowest-calorie", body.Sections[2].ID)

	protein := body.Sections[0]
	assert.Equal(t, 3, protein.Top)
	assert.Equal(t, "cool-wrap", protein.Items[0].Key)
	assert.Equal(t, "01", protein.Items[0].Rank)
	assert.True(t, protein.Items[2].TopRanked)
	assert.False(t, protein.Items[3].TopRanked)

	ratio := body.Sections[1]
	last := ratio.Items[len(ratio.Items)-1]
	assert.Equal(t, "diet-lemonade", last.Key)
	assert.Nil(t, last.Ratio)
}

func TestGetRankings_SelectedVariant(t *testing.T) {
	router := setupRestaurantRouter(t)

	code, resp := get(t, router, "/restaurants/chickfila/rankings/protein?top=1&variant[nuggets]=30pc")
	require.Equal(t, http.StatusOK, code)

	var body struct {
		Section section `json:"section"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &body))
	assert.Equal(t, 1, body.Section.Top)

	var nuggets card
	for _, c := range body.Section.Items {
		if c.Key == "nuggets" {
			nuggets = c
		}
	}
	assert.Equal(t, "30pc", nuggets.SelectedVariantID)
	assert.Equal(t, 101.0, nuggets.Protein)
	assert.Equal(t, "03", nuggets.Rank, "rank comes from the base label")
}

func TestGetRankings_BadRequests(t *testing.T) {
	router := setupRestaurantRouter(t)

	tests := []struct {
		name string
		path string
		code int
	}{
		{name: "negative top", path: "/restaurants/chickfila/rankings?top=-1", code: http.StatusBadRequest},
		{name: "non numeric top", path: "/restaurants/chickfila/rankings?top=three", code: http.StatusBadRequest},
		{name: "unknown ranking", path: "/restaurants/chickfila/rankings/sodium", code: http.StatusBadRequest},
		{name: "unknown restaurant", path: "/restaurants/tacobell/rankings", code: http.StatusNotFound},
		{name: "unknown variant", path: "/restaurants/chickfila/rankings?variant[nuggets]=6pc", code: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := get(t, router, tt.path)
			assert.Equal(t, tt.code, code)
			assert.False(t, resp.Status)
		})
	}
}

func TestGetItemDetails(t *testing.T) {
	router := setupRestaurantRouter(t)

	code, resp := get(t, router, "/restaurants/chickfila/items/nuggets")
	require.Equal(t, http.StatusOK, code)

	var details struct {
		card
		RatioText  string `json:"ratio_text"`
		Disclaimer string `json:"disclaimer"`
		Label      []struct {
			Name  string `json:"name"`
			Value string `json:"value"`
		} `json:"label"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &details))
	assert.Equal(t, "12pc", details.SelectedVariantID)
	assert.Equal(t, "10:1", details.RatioText)
	assert.NotEmpty(t, details.Disclaimer)
	assert.Len(t, details.Label, 10)

	code, _ = get(t, router, "/restaurants/chickfila/items/nuggets?variant=8pc")
	assert.Equal(t, http.StatusOK, code)

	code, _ = get(t, router, "/restaurants/chickfila/items/nuggets?variant=6pc")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = get(t, router, "/restaurants/chickfila/items/big-mac")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = get(t, router, "/restaurants/mcdonalds/items/egg-mcmuffin")
	assert.Equal(t, http.StatusOK, code)
}

func TestAutocompleteSocket(t *testing.T) {
	srv := httptest.NewServer(setupRestaurantRouter(t))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/restaurants/autocomplete/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var msg struct {
		Event string `json:"event"`
		Data  struct {
			Suggestions []struct {
				ID string `json:"id"`
			} `json:"suggestions"`
			HighlightedIndex int `json:"highlighted_index"`
		} `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "suggestions", msg.Event)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "input", "query": "chi"}))
	require.NoError(t, conn.ReadJSON(&msg))
	require.Len(t, msg.Data.Suggestions, 2)
	assert.Equal(t, "chickfila", msg.Data.Suggestions[0].ID)
	assert.Equal(t, 0, msg.Data.HighlightedIndex)
}
