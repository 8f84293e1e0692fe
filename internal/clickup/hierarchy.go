package clickup

import (
	"context"
	"net/url"
)

var unarchived = url.Values{"archived": {"false"}}

// Teams returns the workspaces the token can see.
func (c *Client) Teams(ctx context.Context) ([]Team, error) {
	var resp struct {
		Teams []Team `json:"teams"`
	}
	if err := c.get(ctx, "/team", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Teams, nil
}

// Spaces returns the unarchived spaces in a team, statuses included.
func (c *Client) Spaces(ctx context.Context, teamID string) ([]Space, error) {
	var resp struct {
		Spaces []Space `json:"spaces"`
	}
	if err := c.get(ctx, "/team/"+url.PathEscape(teamID)+"/space", unarchived, &resp); err != nil {
		return nil, err
	}
	return resp.Spaces, nil
}

// Space returns a single space with its configured statuses.
func (c *Client) Space(ctx context.Context, spaceID string) (Space, error) {
	var s Space
	if err := c.get(ctx, "/space/"+url.PathEscape(spaceID), nil, &s); err != nil {
		return Space{}, err
	}
	return s, nil
}

func (c *Client) Folders(ctx context.Context, spaceID string) ([]Folder, error) {
	var resp struct {
		Folders []Folder `json:"folders"`
	}
	if err := c.get(ctx, "/space/"+url.PathEscape(spaceID)+"/folder", unarchived, &resp); err != nil {
		return nil, err
	}
	return resp.Folders, nil
}

func (c *Client) FolderLists(ctx context.Context, folderID string) ([]List, error) {
	var resp struct {
		Lists []List `json:"lists"`
	}
	if err := c.get(ctx, "/folder/"+url.PathEscape(folderID)+"/list", unarchived, &resp); err != nil {
		return nil, err
	}
	return resp.Lists, nil
}

// Lists returns the folderless lists of a space.
func (c *Client) Lists(ctx context.Context, spaceID string) ([]List, error) {
	var resp struct {
		Lists []List `json:"lists"`
	}
	if err := c.get(ctx, "/space/"+url.PathEscape(spaceID)+"/list", unarchived, &resp); err != nil {
		return nil, err
	}
	return resp.Lists, nil
}
