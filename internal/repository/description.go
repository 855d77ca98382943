package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/Pranali0315/NomadHelp/internal/config"
	"github.com/Pranali0315/NomadHelp/internal/model"
)

// minExtractLen is the shortest Wikipedia extract considered usable.
const minExtractLen = 50

// maxDescriptionLen caps the returned description; longer first sentences
// are truncated with an ellipsis marker.
const maxDescriptionLen = 200

// DescriptionRepository looks up a one-sentence encyclopedia summary for a
// resolved place. Best-effort: an error never fails the overall request.
type DescriptionRepository interface {
	Describe(ctx context.Context, name, country string) (string, error)
}

type descriptionRepository struct {
	httpClient *http.Client
}

// NewDescriptionRepository creates a new description repository instance.
func NewDescriptionRepository(httpClient ...*http.Client) DescriptionRepository {
	client := &http.Client{Timeout: config.GetUpstreamTimeout("wikipedia")}
	if len(httpClient) > 0 && httpClient[0] != nil {
		client = httpClient[0]
	}
	return &descriptionRepository{httpClient: client}
}

// Describe tries the place name first, then "name, country" when a distinct
// country is known. A non-200 response or a too-short extract moves on to
// the next candidate; the first usable extract wins. Empty result with nil
// error means no usable summary exists.
func (r *descriptionRepository) Describe(ctx context.Context, name, country string) (string, error) {
	terms := []string{name}
	if country != "" && name != country {
		terms = append(terms, fmt.Sprintf("%s, %s", name, country))
	}

	for _, term := range terms {
		summary, err := r.fetchSummary(ctx, term)
		if err != nil {
			return "", err
		}
		if summary == nil || len(summary.Extract) <= minExtractLen {
			continue
		}
		return clipSentence(summary.Extract), nil
	}

	return "", nil
}

// fetchSummary returns nil without error on a non-200 response so the caller
// can try the next candidate term.
func (r *descriptionRepository) fetchSummary(ctx context.Context, term string) (*model.WikipediaSummary, error) {
	reqURL := config.GetWikipediaApiUrl() + "/" + url.PathEscape(term)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	var summary model.WikipediaSummary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return &summary, nil
}

// clipSentence reduces an extract to its first sentence, re-appending the
// trailing period lost by the split, and truncates to maxDescriptionLen.
func clipSentence(extract string) string {
	sentence := strings.SplitN(extract, ". ", 2)[0]
	if !strings.HasSuffix(sentence, ".") {
		sentence += "."
	}

	runes := []rune(sentence)
	if len(runes) > maxDescriptionLen {
		return string(runes[:maxDescriptionLen]) + "..."
	}
	return sentence
}
