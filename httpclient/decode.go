package httpclient

import (
	"context"
	"fmt"
	"net/http"
)

// FromNativeResponse decodes a raw response into a Response. A 204 response
// has a nil body and is not read. Otherwise override picks the reader; when
// it is ResponseTypeAuto the content type decides between JSON, text and a
// Blob.
func FromNativeResponse(ctx context.Context, raw RawResponse, override ResponseType) (*Response, error) {
	status := raw.StatusCode()
	headers := HeadersFromHTTP(raw.Header())

	if status == http.StatusNoContent {
		return NewResponse(nil, status, headers), nil
	}

	body, err := readBody(ctx, raw, resolveResponseType(override, headers.ContentType()))
	if err != nil {
		return nil, fmt.Errorf("decode response (HTTP %d): %w", status, err)
	}
	return NewResponse(body, status, headers), nil
}

func resolveResponseType(override ResponseType, contentType string) ResponseType {
	switch {
	case override != ResponseTypeAuto:
		return override
	case jsonContentType.MatchString(contentType):
		return ResponseTypeJSON
	case textContentType.MatchString(contentType):
		return ResponseTypeText
	default:
		return ResponseTypeBlob
	}
}

func readBody(ctx context.Context, raw RawResponse, rt ResponseType) (any, error) {
	switch rt {
	case ResponseTypeJSON:
		return raw.JSON(ctx)
	case ResponseTypeText:
		return raw.Text(ctx)
	case ResponseTypeBlob:
		return raw.Blob(ctx)
	case ResponseTypeArrayBuffer:
		return raw.ArrayBuffer(ctx)
	default:
		return nil, fmt.Errorf("unknown response type %q", rt)
	}
}
