package blog

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"beavernorth-backend/pkg/models"
)

// Client defines the interface for fetching published blog posts
type Client interface {
	FetchPosts() ([]models.BlogPost, error)
}

type clientImpl struct {
	feedURL string

	mu       sync.Mutex
	cached   []models.BlogPost
	cachedAt time.Time
	cacheTTL time.Duration
}

// NewClient creates a new blog feed client proxying the configured feed URL
func NewClient(feedURL string) Client {
	return &clientImpl{
		feedURL:  feedURL,
		cacheTTL: 5 * time.Minute,
	}
}

func (c *clientImpl) FetchPosts() ([]models.BlogPost, error) {
	c.mu.Lock()
	if c.cached != nil && time.Since(c.cachedAt) < c.cacheTTL {
		posts := c.cached
		c.mu.Unlock()
		return posts, nil
	}
	c.mu.Unlock()

	req, err := http.NewRequest("GET", c.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching blog feed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error from blog feed: %s", string(body))
	}

	var response struct {
		Items []struct {
			ID        string `json:"id"`
			Title     string `json:"title"`
			Content   string `json:"content"`
			Published string `json:"published"`
			URL       string `json:"url"`
		} `json:"items"`
	}

	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("error parsing response: %w", err)
	}

	posts := make([]models.BlogPost, 0, len(response.Items))
	for _, item := range response.Items {
		posts = append(posts, models.BlogPost{
			ID:        item.ID,
			Title:     item.Title,
			Content:   item.Content,
			Published: item.Published,
			URL:       item.URL,
		})
	}

	c.mu.Lock()
	c.cached = posts
	c.cachedAt = time.Now()
	c.mu.Unlock()

	log.Printf("Fetched %d blog posts from feed", len(posts))
	return posts, nil
}

type demoClient struct{}

// NewDemoClient creates a blog client used when no feed URL is configured
func NewDemoClient() Client {
	return &demoClient{}
}

func (c *demoClient) FetchPosts() ([]models.BlogPost, error) {
	return []models.BlogPost{}, nil
}
