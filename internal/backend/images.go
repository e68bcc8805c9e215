package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"
)

// UploadProductImage загружает изображение товара multipart-запросом.
// mainImage помечает изображение основным для карточки товара.
func (c *Client) UploadProductImage(ctx context.Context, productID int64, filename string, file io.Reader, mainImage bool) (ProductImage, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return ProductImage{}, fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return ProductImage{}, fmt.Errorf("read image file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return ProductImage{}, fmt.Errorf("finish multipart body: %w", err)
	}

	query := url.Values{"mainImage": {fmt.Sprintf("%t", mainImage)}}
	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("/api/images/%d", productID), query, &buf)
	if err != nil {
		return ProductImage{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	start := time.Now()
	image, err := doUpload(c, req)
	c.observe("images.upload", start, err)
	return image, err
}

func doUpload(c *Client, req *http.Request) (ProductImage, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ProductImage{}, transportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return ProductImage{}, transportError(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ProductImage{}, normalizeError(resp.StatusCode, data)
	}

	var image ProductImage
	if len(data) > 0 {
		if err := unmarshalJSON(data, &image); err != nil {
			return ProductImage{}, err
		}
	}
	return image, nil
}

// ProductImages возвращает изображения товара.
func (c *Client) ProductImages(ctx context.Context, productID int64) ([]ProductImage, error) {
	var images []ProductImage
	err := c.call(ctx, "images.list", http.MethodGet, fmt.Sprintf("/api/images/%d", productID), nil, nil, &images)
	return images, err
}

// DeleteProductImage удаляет изображение.
func (c *Client) DeleteProductImage(ctx context.Context, imageID int64) error {
	return c.call(ctx, "images.delete", http.MethodDelete, fmt.Sprintf("/api/images/%d", imageID), nil, nil, nil)
}

// AssignMainImage делает изображение основным для его товара.
func (c *Client) AssignMainImage(ctx context.Context, imageID int64) (ProductImage, error) {
	var image ProductImage
	err := c.call(ctx, "images.assign_main", http.MethodPut, fmt.Sprintf("/api/images/%d/main", imageID), nil, nil, &image)
	return image, err
}
