package httpclient

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/risan/http-client/util"
)

const (
	contentTypeMultipart  = "multipart/form-data"
	contentTypeURLEncoded = "application/x-www-form-urlencoded"
	contentTypeJSON       = "application/json"
)

// RequestOptions merges the options and transcodes a StructuredBody by the
// effective content type: multipart forms and URL-encoded forms replace the
// body and drop the content-type header; anything else moves the data to
// JSON and keeps the header. Other bodies, and empty structured bodies, pass
// through unchanged.
func (c *Client) RequestOptions(opts Options) (EffectiveOptions, error) {
	eff := c.MergeOptions(opts)

	data, ok := eff.Body.(StructuredBody)
	if !ok || len(data) == 0 {
		return eff, nil
	}

	contentType := strings.ToLower(eff.Headers.ContentType())

	switch {
	case strings.Contains(contentType, contentTypeMultipart):
		form, err := toFormBody(data)
		if err != nil {
			return eff, err
		}
		eff.Headers.Del("content-type")
		eff.Body = form

	case strings.Contains(contentType, contentTypeURLEncoded):
		values, err := toURLEncodedBody(data)
		if err != nil {
			return eff, err
		}
		eff.Headers.Del("content-type")
		eff.Body = values

	default:
		eff.JSON = map[string]any(data)
		eff.Body = nil
	}

	return eff, nil
}

// toFormBody appends every entry in key order. Go maps carry no insertion
// order, so the sorted order keeps the wire format stable.
func toFormBody(data StructuredBody) (*FormBody, error) {
	form := NewFormBody()
	for _, key := range util.SortedKeys(data) {
		switch v := data[key].(type) {
		case FileField:
			v.FieldName = util.Coalesce(v.FieldName, key)
			form.AddFile(v)
		case *FileField:
			if v == nil {
				return nil, fmt.Errorf("encode form field %q: nil file", key)
			}
			file := *v
			file.FieldName = util.Coalesce(file.FieldName, key)
			form.AddFile(file)
		default:
			value, err := formValue(v)
			if err != nil {
				return nil, fmt.Errorf("encode form field %q: %w", key, err)
			}
			form.Append(key, value)
		}
	}
	return form, nil
}

func toURLEncodedBody(data StructuredBody) (URLEncodedBody, error) {
	values := URLEncodedBody{}
	for _, key := range util.SortedKeys(data) {
		switch data[key].(type) {
		case FileField, *FileField:
			return nil, fmt.Errorf("encode form field %q: files need a multipart body", key)
		}
		value, err := formValue(data[key])
		if err != nil {
			return nil, fmt.Errorf("encode form field %q: %w", key, err)
		}
		values.Set(key, value)
	}
	return values, nil
}

// formValue stringifies scalars; anything else is sent as JSON text.
func formValue(v any) (string, error) {
	if s, err := cast.ToStringE(v); err == nil {
		return s, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
