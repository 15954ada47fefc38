package schemaform

import (
	"context"
	"fmt"
	"net/http"

	gojson "github.com/goccy/go-json"
)

// Fetcher retrieves the JSON document behind an http-prefixed reference.
// ResolveRef never fetches by itself; it returns a placeholder for
// remote keys until ResolveRemote has installed the document.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (any, error)
}

// HTTPFetcher fetches remote schema documents over HTTP, decoding the
// response body as JSON.
type HTTPFetcher struct {
	// Client is used for requests; http.DefaultClient when nil.
	Client *http.Client
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (any, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, Issues{Issue{Code: CodeFetchFailed, Path: url, Message: "build request", Cause: err}}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, Issues{Issue{Code: CodeFetchFailed, Path: url, Message: "request failed", Cause: err}}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, Issues{Issue{
			Code: CodeFetchFailed, Path: url,
			Message: fmt.Sprintf("unexpected status %d", resp.StatusCode),
		}}
	}
	dec := gojson.NewDecoder(resp.Body)
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, Issues{Issue{Code: CodeParseError, Path: url, Message: "decode response", Cause: err}}
	}
	return doc, nil
}

// fetchCall tracks one in-flight remote fetch so concurrent resolutions
// of the same key share a single request.
type fetchCall struct {
	done chan struct{}
	doc  any
	err  error
}

// ResolveRemote fetches the document behind url and installs it into the
// cache under that key, exactly like a local resolution. Concurrent
// calls for the same key coalesce onto one fetch; on failure the pending
// entry is dropped so a later call may retry, and the cache is never
// left holding a partial result.
func (c *RefCache) ResolveRemote(ctx context.Context, f Fetcher, url string) (any, error) {
	c.mu.Lock()
	if e, ok := c.entries[url]; ok && e.state == refResolved {
		doc := e.schema
		c.mu.Unlock()
		return doc, nil
	}
	if call, ok := c.inflight[url]; ok {
		c.mu.Unlock()
		select {
		case <-call.done:
			return call.doc, call.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	call := &fetchCall{done: make(chan struct{})}
	c.inflight[url] = call
	if _, ok := c.entries[url]; !ok {
		c.entries[url] = &refEntry{state: refPending}
	}
	c.mu.Unlock()

	call.doc, call.err = f.Fetch(ctx, url)

	c.mu.Lock()
	delete(c.inflight, url)
	if call.err != nil {
		c.mu.Unlock()
		c.abandon(url)
		close(call.done)
		return nil, call.err
	}
	if e, ok := c.entries[url]; ok {
		e.state = refResolved
		e.schema = call.doc
	} else {
		c.entries[url] = &refEntry{state: refResolved, schema: call.doc}
	}
	c.mu.Unlock()
	close(call.done)
	return call.doc, nil
}
