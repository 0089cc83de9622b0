// file: internal/sonarr/settings.go
package sonarr

import (
	"context"
	"strconv"
)

// GetQualityProfiles lists quality profiles.
func (c *Client) GetQualityProfiles(ctx context.Context) ([]QualityProfile, error) {
	var out []QualityProfile
	if err := c.get(ctx, "/qualityprofile", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetQualityProfile returns one quality profile.
func (c *Client) GetQualityProfile(ctx context.Context, id int) (*QualityProfile, error) {
	var out QualityProfile
	if err := c.get(ctx, "/qualityprofile/"+strconv.Itoa(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetLanguageProfiles lists language profiles. Sonarr v4 dropped them.
func (c *Client) GetLanguageProfiles(ctx context.Context) ([]LanguageProfile, error) {
	var out []LanguageProfile
	if err := c.get(ctx, "/languageprofile", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCustomFormats lists custom formats.
func (c *Client) GetCustomFormats(ctx context.Context) ([]CustomFormat, error) {
	var out []CustomFormat
	if err := c.get(ctx, "/customformat", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetRootFolders lists root folders with their free space.
func (c *Client) GetRootFolders(ctx context.Context) ([]RootFolder, error) {
	var out []RootFolder
	if err := c.get(ctx, "/rootfolder", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetIndexers lists configured indexers.
func (c *Client) GetIndexers(ctx context.Context) ([]Indexer, error) {
	var out []Indexer
	if err := c.get(ctx, "/indexer", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetDownloadClients lists configured download clients.
func (c *Client) GetDownloadClients(ctx context.Context) ([]DownloadClient, error) {
	var out []DownloadClient
	if err := c.get(ctx, "/downloadclient", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTags lists tags.
func (c *Client) GetTags(ctx context.Context) ([]Tag, error) {
	var out []Tag
	if err := c.get(ctx, "/tag", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTag creates a tag with the given label.
func (c *Client) CreateTag(ctx context.Context, label string) (*Tag, error) {
	var out Tag
	if err := c.post(ctx, "/tag", Tag{Label: label}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
