package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	objectPath = "/storage/v1/object/"
	publicPath = "/storage/v1/object/public/"
)

// UploadObject stores data under bucket/name with the declared content
// type and returns the object's public URL. The bucket must be public for
// the returned URL to resolve; verifying that is the operator's problem.
func (c *Client) UploadObject(ctx context.Context, bucket, name string, data []byte, contentType string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodPost, objectPath+bucket+"/"+name, nil, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := c.do(req)
	if err != nil {
		return "", fmt.Errorf("upload object %s/%s: %w", bucket, name, err)
	}
	drainBody(resp)
	return c.PublicURL(bucket, name), nil
}

// PublicURL resolves the public URL for an object. Song rows store these
// URLs; object names are later derived from their path tails, so the URL
// shape here and that derivation must not drift apart.
func (c *Client) PublicURL(bucket, name string) string {
	return c.baseURL + publicPath + bucket + "/" + name
}

// DeleteObjects removes the named objects from a bucket in one call.
func (c *Client) DeleteObjects(ctx context.Context, bucket string, names []string) error {
	if len(names) == 0 {
		return nil
	}
	payload, err := json.Marshal(map[string][]string{"prefixes": names})
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodDelete, objectPath+bucket, nil, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return fmt.Errorf("delete objects in %s: %w", bucket, err)
	}
	drainBody(resp)
	return nil
}
