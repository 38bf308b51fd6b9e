package mcp

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGroupURI(t *testing.T) {
	tests := []struct {
		uri     string
		kind    string
		want    string
		wantErr bool
	}{
		{uri: "subprofiler://rule/42", kind: "rule", want: "42"},
		{uri: "subprofiler://report/abc", kind: "report", want: "abc"},
		{uri: "subprofiler://rule/", kind: "rule", wantErr: true},
		{uri: "subprofiler://rule/a/b", kind: "rule", wantErr: true},
		{uri: "other://rule/42", kind: "rule", wantErr: true},
		{uri: "subprofiler://report/42", kind: "rule", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			got, err := parseGroupURI(tt.uri, tt.kind)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func readRequest(uri string) mcp.ReadResourceRequest {
	req := mcp.ReadResourceRequest{}
	req.Params.URI = uri
	return req
}

func TestHandleRuleResource(t *testing.T) {
	s, _ := newTestServer(t)

	contents, err := s.handleRuleResource(context.Background(), readRequest("subprofiler://rule/1"))
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, `^[1-29a-bx-y]{4,4}\.`, text.Text)
	assert.Equal(t, "text/plain", text.MIMEType)

	_, err = s.handleRuleResource(context.Background(), readRequest("subprofiler://rule/2"))
	assert.Error(t, err)
}

func TestHandleReportResource(t *testing.T) {
	s, _ := newTestServer(t)

	contents, err := s.handleReportResource(context.Background(), readRequest("subprofiler://report/2"))
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, "text/markdown", text.MIMEType)
	assert.Contains(t, text.Text, "# Group 2")
	assert.Contains(t, text.Text, "_No rule generated._")

	_, err = s.handleReportResource(context.Background(), readRequest("subprofiler://report/missing"))
	assert.Error(t, err)
}
