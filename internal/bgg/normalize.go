package bgg

import (
	"encoding/xml"

	"github.com/spf13/cast"

	"bgmix/internal/models"
)

// The XML API returns everything as strings and uses "N/A" for missing
// ratings; the GraphQL proxy nests typed values. Nothing duck-typed may
// leak past this file: both sources map into the canonical GameRecord
// here, with missing numerics collapsing to zero.

type xmlCollection struct {
	XMLName    xml.Name  `xml:"items"`
	TotalItems string    `xml:"totalitems,attr"`
	PubDate    string    `xml:"pubdate,attr"`
	Items      []xmlItem `xml:"item"`
}

type xmlItem struct {
	ObjectID      string    `xml:"objectid,attr"`
	CollID        string    `xml:"collid,attr"`
	Name          xmlName   `xml:"name"`
	YearPublished string    `xml:"yearpublished"`
	Image         string    `xml:"image"`
	Thumbnail     string    `xml:"thumbnail"`
	Stats         xmlStats  `xml:"stats"`
	Status        xmlStatus `xml:"status"`
}

type xmlName struct {
	Value     string `xml:",chardata"`
	SortIndex string `xml:"sortindex,attr"`
}

type xmlStats struct {
	MinPlayers  string    `xml:"minplayers,attr"`
	MaxPlayers  string    `xml:"maxplayers,attr"`
	MinPlayTime string    `xml:"minplaytime,attr"`
	MaxPlayTime string    `xml:"maxplaytime,attr"`
	PlayingTime string    `xml:"playingtime,attr"`
	Rating      xmlRating `xml:"rating"`
}

type xmlRating struct {
	Average xmlValueAttr `xml:"average"`
}

type xmlValueAttr struct {
	Value string `xml:"value,attr"`
}

type xmlStatus struct {
	Own          string `xml:"own,attr"`
	PrevOwned    string `xml:"prevowned,attr"`
	ForTrade     string `xml:"fortrade,attr"`
	Want         string `xml:"want,attr"`
	WantToPlay   string `xml:"wanttoplay,attr"`
	WantToBuy    string `xml:"wanttobuy,attr"`
	Wishlist     string `xml:"wishlist,attr"`
	Preordered   string `xml:"preordered,attr"`
	LastModified string `xml:"lastmodified,attr"`
}

type xmlErrors struct {
	XMLName xml.Name `xml:"errors"`
	Errors  []struct {
		Message string `xml:"message"`
	} `xml:"error"`
}

func normalizeXMLCollection(username string, doc *xmlCollection) models.UserCollection {
	items := make([]models.GameRecord, 0, len(doc.Items))
	for _, it := range doc.Items {
		items = append(items, normalizeXMLItem(username, it))
	}
	return models.UserCollection{
		Summary: models.CollectionSummary{
			Username:      username,
			TotalItems:    cast.ToInt(doc.TotalItems),
			PublishedDate: doc.PubDate,
		},
		Items: items,
	}
}

func normalizeXMLItem(username string, it xmlItem) models.GameRecord {
	// cast maps "N/A" and other junk to zero, which is exactly the
	// zero-default policy the sort engine depends on.
	return models.GameRecord{
		ID:            it.ObjectID,
		Name:          it.Name.Value,
		SortIndex:     cast.ToInt(it.Name.SortIndex),
		Thumbnail:     it.Thumbnail,
		Image:         it.Image,
		YearPublished: cast.ToInt(it.YearPublished),
		Stats: models.GameStats{
			MinPlayers:  cast.ToInt(it.Stats.MinPlayers),
			MaxPlayers:  cast.ToInt(it.Stats.MaxPlayers),
			MinPlayTime: cast.ToInt(it.Stats.MinPlayTime),
			MaxPlayTime: cast.ToInt(it.Stats.MaxPlayTime),
			PlayingTime: cast.ToInt(it.Stats.PlayingTime),
			Rating:      cast.ToFloat64(it.Stats.Rating.Average.Value),
		},
		Owners: []models.Owner{{
			Username:          username,
			CollectionEntryID: it.CollID,
			Status:            xmlStatusBlob(it.Status),
		}},
	}
}

func xmlStatusBlob(st xmlStatus) map[string]string {
	blob := make(map[string]string)
	put := func(key, val string) {
		if val != "" {
			blob[key] = val
		}
	}
	put("own", st.Own)
	put("prevowned", st.PrevOwned)
	put("fortrade", st.ForTrade)
	put("want", st.Want)
	put("wanttoplay", st.WantToPlay)
	put("wanttobuy", st.WantToBuy)
	put("wishlist", st.Wishlist)
	put("preordered", st.Preordered)
	put("lastmodified", st.LastModified)
	return blob
}

type gqlItem struct {
	EntryID string                 `json:"entryId"`
	Status  map[string]interface{} `json:"status"`
	Game    gqlGame                `json:"game"`
}

type gqlGame struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	SortIndex     int     `json:"sortIndex"`
	Thumbnail     string  `json:"thumbnail"`
	Image         string  `json:"image"`
	YearPublished int     `json:"yearPublished"`
	MinPlayers    int     `json:"minPlayers"`
	MaxPlayers    int     `json:"maxPlayers"`
	MinPlayTime   int     `json:"minPlayTime"`
	MaxPlayTime   int     `json:"maxPlayTime"`
	PlayingTime   int     `json:"playingTime"`
	Rating        gqlStat `json:"rating"`
}

type gqlStat struct {
	Average float64 `json:"average"`
}

func normalizeGraphQLItem(username string, it gqlItem) models.GameRecord {
	blob := make(map[string]string, len(it.Status))
	for k, v := range it.Status {
		if s := cast.ToString(v); s != "" {
			blob[k] = s
		}
	}
	return models.GameRecord{
		ID:            it.Game.ID,
		Name:          it.Game.Name,
		SortIndex:     it.Game.SortIndex,
		Thumbnail:     it.Game.Thumbnail,
		Image:         it.Game.Image,
		YearPublished: it.Game.YearPublished,
		Stats: models.GameStats{
			MinPlayers:  it.Game.MinPlayers,
			MaxPlayers:  it.Game.MaxPlayers,
			MinPlayTime: it.Game.MinPlayTime,
			MaxPlayTime: it.Game.MaxPlayTime,
			PlayingTime: it.Game.PlayingTime,
			Rating:      it.Game.Rating.Average,
		},
		Owners: []models.Owner{{
			Username:          username,
			CollectionEntryID: it.EntryID,
			Status:            blob,
		}},
	}
}
