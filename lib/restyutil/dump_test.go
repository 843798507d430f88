package restyutil

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

func TestDumpID(t *testing.T) {
	testCases := []struct {
		url      string
		expected string
	}{
		{url: "https://en.wikipedia.org/wiki/Lionel_Messi", expected: "Lionel_Messi.http"},
		{url: "https://en.wikipedia.org/wiki/Pedri", expected: "Pedri.http"},
		{url: "https://en.wikipedia.org/wiki/Ga%C3%ABl_Clichy", expected: "Ga_l_Clichy.http"},
		{url: "https://en.wikipedia.org/wiki/Sergio_Busquets_(footballer)", expected: "Sergio_Busquets_footballer.http"},
		{url: "https://example.com/", expected: "index.http"},
	}
	for _, test := range testCases {
		require.Equal(t, test.expected, DumpID(test.url), test.url)
	}
}

func TestDumpResponses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<h1>Lionel Messi</h1>"))
	}))
	defer server.Close()

	output, err := NewFilesystemOutput(t.TempDir())
	require.NoError(t, err)

	client := resty.New()
	DumpResponses(client, output)

	_, err = client.R().Get(server.URL + "/wiki/Lionel_Messi")
	require.NoError(t, err)

	contents, err := os.ReadFile(filepath.Join(output.Directory(), "Lionel_Messi.http"))
	require.NoError(t, err)
	require.Contains(t, string(contents), "---- RESPONSE ----")
	require.Contains(t, string(contents), "GET "+server.URL+"/wiki/Lionel_Messi")
	require.Contains(t, string(contents), "<h1>Lionel Messi</h1>")
}

func TestDumpResponsesNilOutput(t *testing.T) {
	client := resty.New()
	DumpResponses(client, nil)
}
