package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"sort"
	"time"
)

// File is one file part of a multipart upload.
type File struct {
	Field       string
	Name        string
	ContentType string
	Data        []byte
}

// Upload sends multipart/form-data. Empty files are still written as parts.
func (c *Client) Upload(ctx context.Context, method, path string, fields map[string]string, files []File, out any) (Envelope, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := writer.WriteField(k, fields[k]); err != nil {
			return Envelope{}, fmt.Errorf("write field %s: %w", k, err)
		}
	}

	for _, f := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", mime.FormatMediaType("form-data", map[string]string{
			"name":     f.Field,
			"filename": f.Name,
		}))
		contentType := f.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)

		part, err := writer.CreatePart(header)
		if err != nil {
			return Envelope{}, fmt.Errorf("create part %s: %w", f.Field, err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return Envelope{}, fmt.Errorf("write part %s: %w", f.Field, err)
		}
	}
	if err := writer.Close(); err != nil {
		return Envelope{}, fmt.Errorf("close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BuildURL(path), &buf)
	if err != nil {
		return Envelope{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	env, err := c.send(req)
	if err != nil {
		return env, err
	}
	if out != nil {
		if err := env.Decode(out); err != nil {
			return env, fmt.Errorf("%s %s: %w", method, path, err)
		}
	}
	return env, nil
}

// Blob is a binary download.
type Blob struct {
	Data        []byte
	ContentType string
	Filename    string
}

func (c *Client) Download(ctx context.Context, path string) (Blob, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BuildURL(path), nil)
	if err != nil {
		return Blob{}, fmt.Errorf("build request: %w", err)
	}

	start := time.Now()
	stampRequestID(req)
	resp, err := c.http.Do(req)
	if err != nil {
		return Blob{}, fmt.Errorf("GET %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Blob{}, fmt.Errorf("read download: %w", err)
	}
	c.log.Debug().
		Str("url", req.URL.String()).
		Int("status", resp.StatusCode).
		Int("bytes", len(data)).
		Dur("latency", time.Since(start)).
		Msg("gateway download")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Blob{}, newAPIError(resp.StatusCode, data)
	}

	blob := Blob{
		Data:        data,
		ContentType: resp.Header.Get("Content-Type"),
	}
	if disposition := resp.Header.Get("Content-Disposition"); disposition != "" {
		if _, params, err := mime.ParseMediaType(disposition); err == nil {
			blob.Filename = params["filename"]
		}
	}
	return blob, nil
}
