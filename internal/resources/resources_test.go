package resources

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HendryAvila/jira-mcp/internal/config"
	"github.com/HendryAvila/jira-mcp/internal/tracker"
	"github.com/HendryAvila/jira-mcp/internal/workflow"
)

func newHandler(t *testing.T, handler http.HandlerFunc) *Handler {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	client := tracker.NewClient(&config.Config{TrackerURL: ts.URL, TrackerEmail: "e", TrackerToken: "t"})
	return NewHandler(workflow.NewResolver(client))
}

func readReq(uri string) mcp.ReadResourceRequest {
	req := mcp.ReadResourceRequest{}
	req.Params.URI = uri
	return req
}

func textOf(t *testing.T, contents []mcp.ResourceContents) mcp.TextResourceContents {
	t.Helper()
	require.Len(t, contents, 1)
	tc, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok, "expected text contents, got %T", contents[0])
	return tc
}

func TestIssueKeyFromURI(t *testing.T) {
	key, err := IssueKeyFromURI("jira://issue/DP-8/transitions")
	require.NoError(t, err)
	assert.Equal(t, "DP-8", key)

	for _, bad := range []string{
		"jira://issue//transitions",
		"jira://issue/DP-8",
		"jira://issue/DP/8/transitions",
		"https://example.com/DP-8/transitions",
	} {
		_, err := IssueKeyFromURI(bad)
		assert.Error(t, err, bad)
	}
}

func TestHandleTransitions(t *testing.T) {
	h := newHandler(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/api/3/issue/DP-8/transitions", r.URL.Path)
		_, _ = io.WriteString(w, `{"transitions":[{"id":"11","name":"Open"},{"id":21,"name":"Done"}]}`)
	})

	uri := "jira://issue/DP-8/transitions"
	contents, err := h.HandleTransitions(context.Background(), readReq(uri))
	require.NoError(t, err)

	tc := textOf(t, contents)
	assert.Equal(t, uri, tc.URI)
	assert.Equal(t, "application/json", tc.MIMEType)

	var got []workflow.Transition
	require.NoError(t, json.Unmarshal([]byte(tc.Text), &got))
	assert.Equal(t, []workflow.Transition{{ID: "11", Name: "Open"}, {ID: "21", Name: "Done"}}, got)
}

func TestHandleTransitions_Empty(t *testing.T) {
	h := newHandler(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	})

	contents, err := h.HandleTransitions(context.Background(), readReq("jira://issue/DP-8/transitions"))
	require.NoError(t, err)
	assert.Equal(t, "[]", textOf(t, contents).Text)
}

func TestHandleTransitions_TrackerError(t *testing.T) {
	h := newHandler(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, "missing")
	})

	contents, err := h.HandleTransitions(context.Background(), readReq("jira://issue/DP-404/transitions"))
	require.NoError(t, err)

	tc := textOf(t, contents)
	assert.Equal(t, "text/plain", tc.MIMEType)
	assert.Equal(t, "Error: Jira API returned 404: missing", tc.Text)
}

func TestHandleTransitions_BadURI(t *testing.T) {
	h := NewHandler(workflow.NewResolver(nil))
	_, err := h.HandleTransitions(context.Background(), readReq("jira://issue/DP-8"))
	assert.Error(t, err)
}

func TestTransitionsTemplateDefinition(t *testing.T) {
	tmpl := NewHandler(nil).TransitionsTemplate()
	assert.Equal(t, "Issue Transitions", tmpl.Name)
	assert.Equal(t, "application/json", tmpl.MIMEType)
}
