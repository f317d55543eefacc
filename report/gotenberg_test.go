package report

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderHTML(t *testing.T) {
	var gotFilename, gotHTML string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/forms/chromium/convert/html", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("files")
		require.NoError(t, err)
		defer file.Close()
		gotFilename = header.Filename

		var sb strings.Builder
		buf := make([]byte, 4096)
		for {
			n, readErr := file.Read(buf)
			sb.Write(buf[:n])
			if readErr != nil {
				break
			}
		}
		gotHTML = sb.String()

		require.Equal(t, "8.27", r.FormValue("paperWidth"))
		_, _ = w.Write([]byte("%PDF-1.7 stub"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, WithHTTPClient(srv.Client()))
	out, err := client.RenderHTML(context.Background(), "<h1>report</h1>")
	require.NoError(t, err)
	require.Equal(t, "%PDF-1.7 stub", string(out))
	require.Equal(t, "index.html", gotFilename)
	require.Equal(t, "<h1>report</h1>", gotHTML)
}

func TestRenderHTMLErrorIncludesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "chromium crashed", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, WithHTTPClient(srv.Client()))
	_, err := client.RenderHTML(context.Background(), "<p>x</p>")
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 500")
	require.Contains(t, err.Error(), "chromium crashed")
}

func TestPingUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, WithHTTPClient(srv.Client()))
	err := client.Ping(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}
