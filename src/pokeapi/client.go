package pokeapi

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultBaseUrl = "https://pokeapi.co/api/v2/"
	// RandomPoolSize covers the first 151 canonical Pokémon.
	RandomPoolSize = 151
)

// RandomSource picks the id for FetchRandomPokemon. *rand.Rand satisfies it.
type RandomSource interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int {
	return rand.IntN(n)
}

type Client struct {
	baseUrl string
	client  *http.Client
	random  RandomSource
	sugar   *zap.SugaredLogger
}

type Option func(*Client)

func WithBaseUrl(baseUrl string) Option {
	return func(c *Client) {
		c.baseUrl = baseUrl
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

func WithRandomSource(random RandomSource) Option {
	return func(c *Client) {
		c.random = random
	}
}

// WithTimeout bounds each request. Zero keeps the default of waiting forever.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.client.Timeout = timeout
	}
}

func NewClient(sugar *zap.SugaredLogger, opts ...Option) *Client {
	c := &Client{
		baseUrl: DefaultBaseUrl,
		client:  &http.Client{},
		random:  globalSource{},
		sugar:   sugar,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.baseUrl = strings.TrimRight(c.baseUrl, "/")
	return c
}

func (c *Client) getAndDecode(ctx context.Context, endpoint string, target any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(target); err != nil {
		return resp.StatusCode, err
	}
	return resp.StatusCode, nil
}

// FetchPokemon issues a single GET for identifier, an id or a name. The
// identifier is not validated; the API decides what exists.
func (c *Client) FetchPokemon(ctx context.Context, identifier string) (Pokemon, error) {
	endpoint := c.baseUrl + "/pokemon/" + url.PathEscape(identifier)
	c.sugar.Debugf("Fetching Pokemon %s", endpoint)
	var response PokemonResponse
	status, err := c.getAndDecode(ctx, endpoint, &response)
	if err != nil {
		return Pokemon{}, &FetchError{Identifier: identifier, Cause: err}
	}
	if status < 200 || status > 299 {
		return Pokemon{}, &FetchError{Identifier: identifier, StatusCode: status}
	}
	if response.Name == "" || response.Sprites == nil {
		return Pokemon{}, &FetchError{Identifier: identifier, Cause: errMalformed}
	}
	return Pokemon{
		Name:      response.Name,
		SpriteURL: response.Sprites.FrontDefault,
	}, nil
}

// FetchRandomPokemon fetches an id drawn uniformly from [0, RandomPoolSize).
func (c *Client) FetchRandomPokemon(ctx context.Context) (Pokemon, error) {
	id := c.random.IntN(RandomPoolSize)
	return c.FetchPokemon(ctx, strconv.Itoa(id))
}
