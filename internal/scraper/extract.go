package scraper

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"wembleycal/internal/event"
	"wembleycal/internal/logger"
)

// markerPhrase identifies the call-to-action link present on every event card.
const markerPhrase = "find out more"

// Extract parses listing-page HTML into a deduplicated, chronologically
// ordered list of events.
func (s *Scraper) Extract(r io.Reader) ([]*event.Event, error) {
	started := time.Now()

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	anchors := 0
	events := make([]*event.Event, 0)
	doc.Find("a").Each(func(_ int, a *goquery.Selection) {
		text := strings.ToLower(strings.TrimSpace(a.Text()))
		if !strings.HasPrefix(text, markerPhrase) {
			return
		}
		anchors++
		logger.IncrCounter("scrape.anchors")

		if evt := s.extractFromAnchor(a); evt != nil {
			events = append(events, evt)
		}
	})

	deduped := event.Dedupe(events)
	if dropped := len(events) - len(deduped); dropped > 0 {
		logger.IncrCounter("scrape.duplicates")
		logger.Debug("collapsed duplicate events", logger.Fields{"dropped": dropped})
	}
	event.Sort(deduped)

	logger.RecordTiming("scrape.extract", time.Since(started))
	logger.Info("extracted events", logger.Fields{
		"anchors": anchors,
		"events":  len(deduped),
	})
	return deduped, nil
}

// extractFromAnchor walks up from a "Find Out More" link to the surrounding
// event card and reads its fields. It returns nil when no card with a
// heading is found within the depth bound, or when the card's text has no
// parseable date.
func (s *Scraper) extractFromAnchor(a *goquery.Selection) *event.Event {
	card := a
	for i := 0; i < s.parentDepth; i++ {
		card = card.Parent()
		if card.Length() == 0 {
			return nil
		}

		heading := card.Find("h2, h3").First()
		title := strings.TrimSpace(heading.Text())
		if title == "" {
			continue
		}

		start, end, allDay, ok := event.ParseDateTime(visibleText(card), s.loc, s.duration)
		if !ok {
			logger.IncrCounter("scrape.skipped_no_date")
			logger.Debug("skipping card without parseable date", logger.Fields{"title": title})
			return nil
		}

		return &event.Event{
			Title:       title,
			Start:       start,
			End:         end,
			AllDay:      allDay,
			Description: textAfterHeading(heading),
			Location:    s.venue,
			URL:         s.resolveHref(a),
		}
	}
	return nil
}

// resolveHref turns the anchor's href into an absolute URL against the
// configured base. A missing href yields an empty string.
func (s *Scraper) resolveHref(a *goquery.Selection) string {
	href, ok := a.Attr("href")
	if !ok || href == "" {
		return ""
	}
	ref, err := s.base.Parse(href)
	if err != nil {
		logger.Debug("unresolvable href", logger.Fields{"href": href})
		return ""
	}
	return ref.String()
}

// visibleText flattens a selection into its visible text, one trimmed line
// per text node, empty lines dropped.
func visibleText(sel *goquery.Selection) string {
	var lines []string
	for _, node := range sel.Nodes {
		collectText(node, &lines)
	}
	return strings.Join(lines, "\n")
}

func collectText(n *html.Node, lines *[]string) {
	if n.Type == html.TextNode {
		if s := strings.TrimSpace(n.Data); s != "" {
			*lines = append(*lines, s)
		}
		return
	}
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, lines)
	}
}

// textAfterHeading returns the first non-empty text node following the
// heading's subtree in document order. Best effort: events with nothing
// after the heading get an empty description.
func textAfterHeading(heading *goquery.Selection) string {
	if len(heading.Nodes) == 0 {
		return ""
	}
	for n := following(heading.Nodes[0]); n != nil; n = nextNode(n) {
		if n.Type == html.TextNode {
			if s := strings.TrimSpace(n.Data); s != "" {
				return s
			}
		}
	}
	return ""
}

// following returns the next node in document order that is not inside n's
// subtree.
func following(n *html.Node) *html.Node {
	for n != nil {
		if n.NextSibling != nil {
			return n.NextSibling
		}
		n = n.Parent
	}
	return nil
}

// nextNode advances one step in document order, descending into children.
func nextNode(n *html.Node) *html.Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	return following(n)
}
