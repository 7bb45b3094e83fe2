package validators

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

const (
	maxBodyBytes      = 1 << 20
	maxMultipartBytes = 1 << 20
)

// ReadValues decodes a form post into flat values. JSON objects,
// urlencoded bodies and multipart forms are accepted; JSON scalars are
// stringified so every caller validates the same representation.
func ReadValues(r *http.Request) (url.Values, error) {
	if r.Body == nil {
		return url.Values{}, nil
	}
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		defer func() {
			_, _ = io.Copy(io.Discard, r.Body)
		}()
		return decodeJSONValues(io.LimitReader(r.Body, maxBodyBytes))
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxMultipartBytes); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart body")
		}
		return r.PostForm, nil
	default:
		r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form body")
		}
		return r.PostForm, nil
	}
}

// PeekValues reads the form like ReadValues but leaves the body in place for
// the next handler.
func PeekValues(r *http.Request) (url.Values, error) {
	if r.Body == nil {
		return url.Values{}, nil
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read request body")
	}
	_ = r.Body.Close()

	clone := r.Clone(r.Context())
	clone.Body = io.NopCloser(bytes.NewReader(body))
	clone.Form, clone.PostForm, clone.MultipartForm = nil, nil, nil
	values, err := ReadValues(clone)

	r.Body = io.NopCloser(bytes.NewReader(body))
	return values, err
}

func decodeJSONValues(body io.Reader) (url.Values, error) {
	var raw map[string]any
	decoder := json.NewDecoder(body)
	decoder.UseNumber()
	if err := decoder.Decode(&raw); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body").WithDetails(map[string]any{"error": err.Error()})
	}
	values := url.Values{}
	for key, v := range raw {
		switch typed := v.(type) {
		case nil:
			continue
		case string:
			values.Set(key, typed)
		case json.Number:
			values.Set(key, typed.String())
		case bool:
			values.Set(key, strconv.FormatBool(typed))
		default:
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid request body").
				WithDetails(map[string]any{"field": key, "error": fmt.Sprintf("unsupported value type %T", v)})
		}
	}
	return values, nil
}

// ParseID parses a numeric path id. Anything else cannot name a row, so it
// is reported as not found. Ids are capped at 63 bits to fit a bigint key.
func ParseID(raw string) (uint64, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 63)
	if err != nil || id == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeNotFound, "resource not found")
	}
	return id, nil
}
