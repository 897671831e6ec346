package catalog

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxCatalogSize bounds a fetched catalog document.
const maxCatalogSize = 10 << 20

var fetchClient = &http.Client{Timeout: 30 * time.Second}

// isURL reports whether path names a remote catalog.
func isURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// Fetch downloads a catalog document from url and parses it.
func Fetch(url string) (*Catalog, error) {
	data, err := fetch(fetchClient, url)
	if err != nil {
		return nil, fmt.Errorf("fetching catalog: %w", err)
	}
	return Parse(data)
}

func fetch(client *http.Client, url string) (data []byte, err error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "amlak")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing body: %w", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err = io.ReadAll(io.LimitReader(resp.Body, maxCatalogSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if len(data) > maxCatalogSize {
		return nil, fmt.Errorf("catalog larger than %d bytes", maxCatalogSize)
	}
	return data, nil
}
