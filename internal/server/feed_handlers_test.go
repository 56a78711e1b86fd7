package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"irysworld/internal/models"
)

type feedPageBody struct {
	Items []struct {
		Type          string  `json:"type"`
		ID            string  `json:"id"`
		CommentsCount int     `json:"comments_count"`
		ImageURL      *string `json:"image_url"`
	} `json:"items"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

func TestGetFeed(t *testing.T) {
	app, _ := newTestApp(t, allFlags, nil)

	resp := doJSON(t, app, http.MethodGet, "/api/feed", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page feedPageBody
	decode(t, resp, &page)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 20, page.Limit)
	require.Len(t, page.Items, 3)
	assert.Equal(t, "post", page.Items[0].Type)
	assert.Equal(t, "p1", page.Items[0].ID)
	assert.Equal(t, 3, page.Items[0].CommentsCount)
	assert.Equal(t, "poll", page.Items[1].Type)
	assert.Equal(t, "p2", page.Items[2].ID)

	resp = doJSON(t, app, http.MethodGet, "/api/feed?limit=1&offset=1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page = feedPageBody{}
	decode(t, resp, &page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "poll1", page.Items[0].ID)
}

func TestCreatePost(t *testing.T) {
	app, _ := newTestApp(t, allFlags, nil)

	resp := doJSON(t, app, http.MethodPost, "/api/posts", CreatePostRequest{Content: "Hello from the rings of Irys"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var post models.Post
	decode(t, resp, &post)
	assert.Equal(t, "post", post.Type)
	assert.Equal(t, "u1", post.User.ID)
	assert.Nil(t, post.ImageURL)
	assert.Zero(t, post.CommentsCount)

	resp = doJSON(t, app, http.MethodGet, "/api/feed", nil)
	var page feedPageBody
	decode(t, resp, &page)
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, post.ID, page.Items[0].ID)

	resp = doJSON(t, app, http.MethodPost, "/api/posts", CreatePostRequest{Content: "  "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, models.CodeValidation, decodeError(t, resp).Code)
}

func TestCreatePoll(t *testing.T) {
	app, _ := newTestApp(t, allFlags, nil)

	resp := doJSON(t, app, http.MethodPost, "/api/polls", CreatePollRequest{Question: "Best moon?", Options: []string{"Io"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/polls", CreatePollRequest{
		Question: "Best moon?", Options: []string{"Io", "Europa", "Titan", "Triton", "Luna", "Phobos"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/polls", CreatePollRequest{Question: "Best moon?", Options: []string{"Io", "Europa"}})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var p models.Poll
	decode(t, resp, &p)
	require.Len(t, p.Options, 2)
	assert.Equal(t, "opt1", p.Options[0].ID)
	assert.Zero(t, p.TotalVotes)
	assert.Nil(t, p.VotedOptionID)
	assert.Equal(t, 0, p.Tally[0].Percentage)
}

func TestToggleLike(t *testing.T) {
	app, _ := newTestApp(t, allFlags, nil)

	resp := doJSON(t, app, http.MethodPost, "/api/items/p2/like", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var post models.Post
	decode(t, resp, &post)
	assert.Equal(t, 257, post.Likes)
	assert.True(t, post.Liked)

	resp = doJSON(t, app, http.MethodPost, "/api/items/p2/like", nil)
	post = models.Post{}
	decode(t, resp, &post)
	assert.Equal(t, 256, post.Likes)
	assert.False(t, post.Liked)

	resp = doJSON(t, app, http.MethodPost, "/api/items/nope/like", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetItem(t *testing.T) {
	app, _ := newTestApp(t, allFlags, nil)

	resp := doJSON(t, app, http.MethodGet, "/api/items/poll1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var p models.Poll
	decode(t, resp, &p)
	assert.Equal(t, "poll", p.Type)
	assert.Equal(t, 460, p.TotalVotes)
	assert.Equal(t, "Lyra", p.User.Name)

	resp = doJSON(t, app, http.MethodGet, "/api/items/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, models.CodeNotFound, decodeError(t, resp).Code)
}
