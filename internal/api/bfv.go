package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"bfv-tracker/internal/config"
)

// Client wraps the upstream endpoints. Every method returns nil when the
// upstream could not deliver a decodable response.
type Client struct {
	fetcher     *Fetcher
	robotURL    string
	bfbanURL    string
	searchLimit int
}

func NewClient(fetcher *Fetcher, cfg *config.Config) *Client {
	return &Client{
		fetcher:     fetcher,
		robotURL:    cfg.RobotAPIURL,
		bfbanURL:    cfg.BFBanAPIURL,
		searchLimit: cfg.ServerSearchLimit,
	}
}

func (c *Client) CheckPlayer(ctx context.Context, name string) *CheckPlayerResponse {
	u := fmt.Sprintf("%s/api/v2/bfv/checkPlayer?name=%s", c.robotURL, url.QueryEscape(name))
	return Fetch[CheckPlayerResponse](ctx, c.fetcher, u)
}

func (c *Client) GetAllStats(ctx context.Context, personaID string) *AllStatsResponse {
	u := fmt.Sprintf("%s/api/worker/player/getAllStats?personaId=%s", c.robotURL, url.QueryEscape(personaID))
	return Fetch[AllStatsResponse](ctx, c.fetcher, u)
}

func (c *Client) GetBanRecord(ctx context.Context, personaID string) *BanRecordResponse {
	u := fmt.Sprintf("%s/api/player?personaId=%s", c.bfbanURL, url.QueryEscape(personaID))
	return Fetch[BanRecordResponse](ctx, c.fetcher, u)
}

func (c *Client) GetBannedLogs(ctx context.Context, personaID string) *BanLogResponse {
	u := fmt.Sprintf("%s/api/player/getBannedLogsByPersonaId?personaId=%s", c.robotURL, url.QueryEscape(personaID))
	return Fetch[BanLogResponse](ctx, c.fetcher, u)
}

func (c *Client) GetCommunityStatus(ctx context.Context, personaID string) *CommunityStatusResponse {
	u := fmt.Sprintf("%s/api/v2/player/getCommunityStatus?personaId=%s", c.robotURL, url.QueryEscape(personaID))
	return Fetch[CommunityStatusResponse](ctx, c.fetcher, u)
}

func (c *Client) SearchServers(ctx context.Context, name string) *ServerSearchResponse {
	u := fmt.Sprintf("%s/api/bfv/servers?serverName=%s&region=all&limit=%s",
		c.robotURL, url.QueryEscape(name), strconv.Itoa(c.searchLimit))
	return Fetch[ServerSearchResponse](ctx, c.fetcher, u)
}

type CheckPlayerResponse struct {
	Status  FlexInt `json:"status"`
	Message string  `json:"message"`
	Data    struct {
		PersonaID FlexString `json:"personaId"`
		Name      string     `json:"name"`
	} `json:"data"`
}

type AllStatsResponse struct {
	Success FlexInt   `json:"success"`
	Data    StatsData `json:"data"`
}

type StatsData struct {
	Rank           FlexInt   `json:"rank"`
	Kills          FlexInt   `json:"kills"`
	Deaths         FlexInt   `json:"deaths"`
	KillDeath      FlexFloat `json:"killDeath"`
	KillsPerMinute FlexFloat `json:"killsPerMinute"`
	ScorePerMinute FlexFloat `json:"scorePerMinute"`
	Revives        FlexInt   `json:"revives"`
	TimePlayed     FlexFloat `json:"timePlayed"`

	Weapons      []WeaponStat  `json:"weapons"`
	Gadgets      []WeaponStat  `json:"gadgets"`
	UnpackWeapon []WeaponStat  `json:"unpackWeapon"`
	Vehicles     []VehicleStat `json:"vehicles"`
}

type WeaponStat struct {
	Name           FlexString `json:"name"`
	Kills          CellInt    `json:"kills"`
	KillsPerMinute FlexString `json:"killsPerMinute"`
	Headshots      FlexString `json:"headshots"`
	Accuracy       FlexString `json:"accuracy"`
	HitVKills      FlexString `json:"hitVKills"`
}

type VehicleStat struct {
	Name           FlexString `json:"name"`
	Kills          CellInt    `json:"kills"`
	KillsPerMinute FlexString `json:"killsPerMinute"`
	Destroy        FlexString `json:"destroy"`
}

type BanRecordResponse struct {
	Data *struct {
		Status FlexInt `json:"status"`
	} `json:"data"`
}

type BanLogResponse struct {
	Success FlexInt `json:"success"`
	Data    []struct {
		ServerName string `json:"serverName"`
		Reason     string `json:"reason"`
		CreateTime string `json:"createTime"`
	} `json:"data"`
}

type CommunityStatusResponse struct {
	Data *struct {
		ReasonStatus FlexInt `json:"reasonStatus"`
	} `json:"data"`
}

type ServerSearchResponse struct {
	Success FlexInt        `json:"success"`
	Data    []ServerResult `json:"data"`
}

type ServerResult struct {
	ServerName string `json:"serverName"`
	URL        string `json:"url"`
	MapName    string `json:"mapName"`
	MapMode    string `json:"mapMode"`
	Slots      struct {
		Soldier struct {
			Current CellInt `json:"current"`
			Max     CellInt `json:"max"`
		} `json:"Soldier"`
		Queue struct {
			Current CellInt `json:"current"`
		} `json:"Queue"`
	} `json:"slots"`
}
