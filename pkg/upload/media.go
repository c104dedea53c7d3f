package upload

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
)

// urlPattern recognizes remote media references. Anything else in a media
// form value is treated as an opaque file identifier and passed through.
var urlPattern = regexp.MustCompile(`^https?://[^\s/$.?#].[^\s]*$`)

// fetchClient downloads remote media. Package-level so tests can swap it.
var fetchClient = &http.Client{}

// File is a resolved media payload. Exactly one of Data or Ref is set:
// Data carries uploaded or downloaded bytes, Ref carries an opaque file
// identifier that the upload path forwards as-is.
type File struct {
	Name string
	Data []byte
	Ref  string
}

// MediaRequest is a parsed big-upload send call.
type MediaRequest struct {
	// ChatID is the destination chat, verbatim from the request. It may be
	// a numeric identifier or an @username.
	ChatID string

	// Media is the main payload. Never nil.
	Media *File

	// Thumbnail is the optional thumbnail payload.
	Thumbnail *File

	// Params holds the remaining request parameters (caption, parse_mode
	// and so on) with the media fields removed.
	Params url.Values
}

// ParseMediaRequest extracts the media payload for a big-upload send call.
// media names the method's media field ("document" for sendDocument and so
// on). The payload is resolved from, in order: a multipart file part, a URL
// form value (downloaded, size-capped), or any other form value (treated as
// a file identifier). A missing payload is a 400 failure; an oversized one
// is a 413 failure.
func ParseMediaRequest(r *http.Request, media string) (*MediaRequest, error) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/") {
		if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
			if err == http.ErrNotMultipart {
				return nil, NoMediaError(media)
			}
			return nil, TooLargeError()
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return nil, NoMediaError(media)
		}
	}

	req := &MediaRequest{Params: url.Values{}}
	for key, vals := range r.Form {
		if key == media || key == "thumbnail" || key == "big_file" {
			continue
		}
		req.Params[key] = vals
	}
	req.ChatID = r.Form.Get("chat_id")

	main, err := resolveFile(r, media)
	if err != nil {
		return nil, err
	}
	if main == nil {
		return nil, NoMediaError(media)
	}
	req.Media = main

	thumb, err := resolveFile(r, "thumbnail")
	if err != nil {
		return nil, err
	}
	req.Thumbnail = thumb

	return req, nil
}

// resolveFile looks field up as a multipart part first, then as a form
// value. A nil, nil return means the field is absent.
func resolveFile(r *http.Request, field string) (*File, error) {
	if r.MultipartForm != nil {
		part, header, err := r.FormFile(field)
		if err == nil {
			defer part.Close()
			if header.Size > MaxUploadSize {
				return nil, TooLargeError()
			}
			data, err := io.ReadAll(io.LimitReader(part, MaxUploadSize+1))
			if err != nil {
				return nil, fmt.Errorf("read %s part: %w", field, err)
			}
			if len(data) > MaxUploadSize {
				return nil, TooLargeError()
			}
			name := header.Filename
			if name == "" {
				name = field
			}
			return &File{Name: name, Data: data}, nil
		}
	}

	val := r.Form.Get(field)
	if val == "" {
		return nil, nil
	}
	if urlPattern.MatchString(val) {
		return fetchURL(val)
	}
	return &File{Ref: val}, nil
}

// fetchURL downloads a remote media reference, enforcing the size cap.
func fetchURL(rawURL string) (*File, error) {
	resp, err := fetchClient.Get(rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch media url: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch media url: unexpected status %d", resp.StatusCode)
	}
	if resp.ContentLength > MaxUploadSize {
		return nil, TooLargeError()
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("fetch media url: %w", err)
	}
	if len(data) > MaxUploadSize {
		return nil, TooLargeError()
	}

	name := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		if base := strings.TrimSuffix(u.Path, "/"); base != "" {
			if idx := strings.LastIndex(base, "/"); idx >= 0 {
				name = base[idx+1:]
			}
		}
	}
	return &File{Name: name, Data: data}, nil
}
