package services

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hamuko/daiseihai/models"
)

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func TestLegacyRedirectSingleVideo(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp(t, db)

	tournament := createTournament(t, db)
	video := createVideo(t, db, tournament, models.NewDate(2019, time.December, 6), 1, true)

	resp := getJSON(t, app, "/video/"+itoa(video.ID)+"/", nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/video/"+tournament.Slug+"/2019-12-06/", resp.Header.Get("Location"))
}

func TestLegacyRedirectSharedDate(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp(t, db)

	tournament := createTournament(t, db)
	video1 := createVideo(t, db, tournament, models.NewDate(2019, time.December, 6), 1, true)
	video2 := createVideo(t, db, tournament, models.NewDate(2019, time.December, 6), 2, true)

	resp := getJSON(t, app, "/video/"+itoa(video1.ID)+"/", nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/video/"+tournament.Slug+"/2019-12-06/1/", resp.Header.Get("Location"))

	resp = getJSON(t, app, "/video/"+itoa(video2.ID)+"/", nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/video/"+tournament.Slug+"/2019-12-06/2/", resp.Header.Get("Location"))
}

func TestLegacyRedirectKeepsQueryString(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp(t, db)

	tournament := createTournament(t, db)
	video := createVideo(t, db, tournament, models.NewDate(2019, time.December, 6), 1, true)

	resp := getJSON(t, app, "/video/"+itoa(video.ID)+"/?t=1234.567", nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/video/"+tournament.Slug+"/2019-12-06/?t=1234.567", resp.Header.Get("Location"))
}

func TestLegacyRedirectNotFound(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp(t, db)

	resp := getJSON(t, app, "/video/9183/", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBookmarkFeed(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp(t, db)

	tournament := createTournament(t, db)
	video := createVideo(t, db, tournament, models.NewDate(2018, time.July, 27), 1, true)

	// Inserted out of position order on purpose.
	for _, bookmark := range []models.VideoBookmark{
		{VideoID: video.ID, Name: "/a/ - /u/", Position: 809132},
		{VideoID: video.ID, Name: "Draw", Position: 18394948},
		{VideoID: video.ID, Name: "/ck/ - /gd/", Position: 5892160},
	} {
		require.NoError(t, db.Create(&bookmark).Error)
	}

	var feed []struct {
		Name     string  `json:"name"`
		Position float64 `json:"position"`
	}
	resp := getJSON(t, app, "/video/"+itoa(video.ID)+"/bookmarks/", &feed)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.Len(t, feed, 3)
	assert.Equal(t, "/a/ - /u/", feed[0].Name)
	assert.InDelta(t, 809.132, feed[0].Position, 1e-9)
	assert.Equal(t, "/ck/ - /gd/", feed[1].Name)
	assert.InDelta(t, 5892.160, feed[1].Position, 1e-9)
	assert.Equal(t, "Draw", feed[2].Name)
	assert.InDelta(t, 18394.948, feed[2].Position, 1e-9)
}

func TestBookmarkFeedEmpty(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp(t, db)

	tournament := createTournament(t, db)
	video := createVideo(t, db, tournament, models.NewDate(2018, time.July, 27), 1, true)

	var feed []interface{}
	resp := getJSON(t, app, "/video/"+itoa(video.ID)+"/bookmarks/", &feed)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, feed)
}

func TestBookmarkFeedUnknownVideo(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp(t, db)

	var feed []interface{}
	resp := getJSON(t, app, "/video/9183/bookmarks/", &feed)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, feed)
}

func TestVideoDetail(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp(t, db)

	tournament := createTournament(t, db)
	video := createVideo(t, db, tournament, models.NewDate(2018, time.July, 28), 1, true)
	createVideo(t, db, tournament, models.NewDate(2018, time.July, 28), 2, true)

	var detail videoItem
	resp := getJSON(t, app, "/video/"+tournament.Slug+"/2018-07-28/", &detail)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, video.ID, detail.ID)
	assert.Equal(t, 1, detail.Part)
	assert.Equal(t, 2, detail.PartCount)
	assert.Equal(t, "https://videos.example.com/"+video.Filename, detail.Link)

	resp = getJSON(t, app, "/video/"+tournament.Slug+"/2018-07-28/2/", &detail)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, detail.Part)
}

func TestVideoDetailInvisible(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp(t, db)

	tournament := createTournament(t, db)
	createVideo(t, db, tournament, models.NewDate(2018, time.July, 28), 1, false)

	resp := getJSON(t, app, "/video/"+tournament.Slug+"/2018-07-28/", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func postJSON(t *testing.T, app *fiber.App, method, path string, payload interface{}, out interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	if out != nil && resp.StatusCode < 300 {
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, out))
	}
	return resp
}

func TestCreateVideoDerivesChatStart(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp(t, db)

	tournament := createTournament(t, db)
	chat := models.Chat{ID: uuid.New(), Date: models.NewDate(2019, time.December, 21)}
	require.NoError(t, db.Create(&chat).Error)
	chatID := chat.ID.String()

	var created struct {
		ID        uint   `json:"id"`
		ChatStart *int64 `json:"chat_start"`
	}
	resp := postJSON(t, app, http.MethodPost, "/videos", map[string]interface{}{
		"tournament":                tournament.Slug,
		"date":                      "2019-12-21",
		"chat":                      chatID,
		"sync_help_chat_timestamp":  "1,576,949,556,379",
		"sync_help_video_timestamp": "00:19:19.001",
	}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotNil(t, created.ChatStart)
	assert.Equal(t, int64(1576948397378), *created.ChatStart)
}

func TestCreateVideoExplicitChatStartWins(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp(t, db)

	tournament := createTournament(t, db)

	var created struct {
		ChatStart *int64 `json:"chat_start"`
	}
	resp := postJSON(t, app, http.MethodPost, "/videos", map[string]interface{}{
		"tournament":                tournament.Slug,
		"date":                      "2019-12-21",
		"chat_start":                1576861555677,
		"sync_help_chat_timestamp":  "1576949556379",
		"sync_help_video_timestamp": "00:19:19.001",
	}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotNil(t, created.ChatStart)
	assert.Equal(t, int64(1576861555677), *created.ChatStart)
}

func TestCreateVideoWithoutHelpersKeepsChatStartEmpty(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp(t, db)

	tournament := createTournament(t, db)

	var created struct {
		ChatStart *int64 `json:"chat_start"`
	}
	resp := postJSON(t, app, http.MethodPost, "/videos", map[string]interface{}{
		"tournament":               tournament.Slug,
		"date":                     "2019-12-21",
		"sync_help_chat_timestamp": "1576949556379",
	}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Nil(t, created.ChatStart)
}

func TestCreateVideoDuplicateOrdinal(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp(t, db)

	tournament := createTournament(t, db)
	createVideo(t, db, tournament, models.NewDate(2019, time.December, 21), 1, true)

	resp := postJSON(t, app, http.MethodPost, "/videos", map[string]interface{}{
		"tournament": tournament.Slug,
		"date":       "2019-12-21",
		"order":      1,
	}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCreateVideoWithMatchupsAndBookmarks(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp(t, db)

	tournament := createTournament(t, db)
	home := createTeam(t, db, "/a/")
	away := createTeam(t, db, "/u/")

	var created struct {
		ID uint `json:"id"`
	}
	resp := postJSON(t, app, http.MethodPost, "/videos", map[string]interface{}{
		"tournament": tournament.Slug,
		"date":       "2019-12-21",
		"matchups": []map[string]interface{}{
			{"home": home.Slug, "away": away.Slug},
		},
		"bookmarks": []map[string]interface{}{
			{"name": "/a/ - /u/", "position": "00:13:29.132"},
		},
	}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var matchups []models.Matchup
	require.NoError(t, db.Where("video_id = ?", created.ID).Find(&matchups).Error)
	require.Len(t, matchups, 1)
	assert.Equal(t, home.ID, matchups[0].HomeID)

	var bookmarks []models.VideoBookmark
	require.NoError(t, db.Where("video_id = ?", created.ID).Find(&bookmarks).Error)
	require.Len(t, bookmarks, 1)
	assert.Equal(t, int64(809132), bookmarks[0].Position)
}

func TestDeleteTournamentWithVideosRejected(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp(t, db)

	tournament := createTournament(t, db)
	createVideo(t, db, tournament, models.NewDate(2018, time.July, 27), 1, true)

	req := httptest.NewRequest(http.MethodDelete, "/tournaments/"+tournament.Slug, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestDeleteReferencedChatRejected(t *testing.T) {
	db := setupTestDB(t)
	app := newTestApp(t, db)

	tournament := createTournament(t, db)
	chat := models.Chat{ID: uuid.New(), Date: models.NewDate(2018, time.July, 27)}
	require.NoError(t, db.Create(&chat).Error)

	video := createVideo(t, db, tournament, models.NewDate(2018, time.July, 27), 1, true)
	require.NoError(t, db.Model(video).Update("chat_id", chat.ID).Error)

	req := httptest.NewRequest(http.MethodDelete, "/chats/"+chat.ID.String(), nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}
