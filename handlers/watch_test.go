package handlers

import (
	"bulkimage/types"
	"errors"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gorilla "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialWS(t *testing.T, helper *TestHelper, path string) (*gorilla.Conn, *http.Response, error) {
	wsURL := "ws" + strings.TrimPrefix(helper.Server.URL, "http") + path
	return gorilla.DefaultDialer.Dial(wsURL, nil)
}

func TestWatchFolderSendsInitialReport(t *testing.T) {
	helper := NewTestHelper(t)
	helper.WritePNG(t, helper.Dir, "a.png", 4, 3)

	conn, _, err := dialWS(t, helper, "/api/ws/folders?path="+url.QueryEscape(helper.Dir))
	require.NoError(t, err)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	var msg types.ScanMessage
	require.NoError(t, conn.ReadJSON(&msg))

	assert.Equal(t, "report", msg.Type)
	require.NotNil(t, msg.Report)
	assert.Equal(t, 1, msg.Report.TotalCount)

	key, err := filepath.Abs(helper.Dir)
	require.NoError(t, err)
	assert.Equal(t, []string{key}, helper.Watcher.watched)

	// Later reports for the same folder arrive on the same connection
	assert.Eventually(t, func() bool { return helper.Hub.ClientCount(key) == 1 }, 2*time.Second, 10*time.Millisecond)
	helper.Hub.PublishReport(key, &types.ScanReport{Folder: key, TotalCount: 7})

	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, 7, msg.Report.TotalCount)
}

func TestWatchFolderErrors(t *testing.T) {
	helper := NewTestHelper(t)

	_, resp, err := dialWS(t, helper, "/api/ws/folders")
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_, resp, err = dialWS(t, helper, "/api/ws/folders?path="+url.QueryEscape(filepath.Join(helper.Dir, "missing")))
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	helper.Watcher.err = errors.New("inotify limit reached")
	_, resp, err = dialWS(t, helper, "/api/ws/folders?path="+url.QueryEscape(helper.Dir))
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestWatchAll(t *testing.T) {
	helper := NewTestHelper(t)

	conn, _, err := dialWS(t, helper, "/api/ws/all")
	require.NoError(t, err)
	defer conn.Close()

	assert.Eventually(t, func() bool { return helper.Hub.ClientCount("all") == 1 }, 2*time.Second, 10*time.Millisecond)
	helper.Hub.PublishError("/photos", "folder not found")

	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	var msg types.ScanMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "error", msg.Type)
	assert.Equal(t, "/photos", msg.Folder)
}
