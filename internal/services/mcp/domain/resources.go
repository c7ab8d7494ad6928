package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	platformerrors "github.com/koriyoshi2041/zhouyi/internal/platform/errors"
)

const hexagramURIPrefix = "hexagram://"

// HexagramResourceTemplate defines the readable hexagram resource.
func HexagramResourceTemplate() *mcp.ResourceTemplate {
	return &mcp.ResourceTemplate{
		Name:        "hexagram",
		Title:       "Hexagram",
		Description: "Catalog entry for one hexagram. URI format: hexagram://{ref} where ref is a number, name or key",
		MIMEType:    "application/json",
		URITemplate: "hexagram://{ref}",
	}
}

// HexagramResourceHandler serves catalog entries as JSON resources.
func HexagramResourceHandler(svc Divination) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if req == nil || req.Params == nil || req.Params.URI == "" {
			return nil, fmt.Errorf("hexagram ref is required; use URI format hexagram://{ref}")
		}
		uri := req.Params.URI
		ref, err := parseHexagramRef(uri)
		if err != nil {
			return nil, err
		}

		h, err := svc.Lookup(ctx, ref)
		if err != nil {
			if platformerrors.GetCode(err) == platformerrors.CodeHexagramNotFound {
				return nil, mcp.ResourceNotFoundError(uri)
			}
			return nil, fmt.Errorf("hexagram lookup failed: %w", err)
		}

		data, err := json.MarshalIndent(hexagramResult(h), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal hexagram: %w", err)
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}

// parseHexagramRef extracts the ref from hexagram://{ref}.
func parseHexagramRef(uri string) (string, error) {
	if !strings.HasPrefix(uri, hexagramURIPrefix) {
		return "", fmt.Errorf("invalid URI %q: expected hexagram://{ref}", uri)
	}
	ref, err := url.PathUnescape(strings.TrimPrefix(uri, hexagramURIPrefix))
	if err != nil {
		return "", fmt.Errorf("invalid URI %q: %w", uri, err)
	}
	ref = strings.Trim(ref, "/ ")
	if ref == "" {
		return "", fmt.Errorf("hexagram ref is required in URI %q", uri)
	}
	return ref, nil
}
