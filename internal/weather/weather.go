package weather

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/sswu-capstoneDesign2025/backend/internal/timeexpr"
	"github.com/sswu-capstoneDesign2025/backend/pkg/logger"
)

// Provider answers a weather question for a resolved location and time
// expression with a spoken-style Korean sentence.
type Provider interface {
	Report(ctx context.Context, location string, expr timeexpr.Expr, offset int) (string, error)
}

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0.0.0 Safari/537.36"

// NaverWeather scrapes the Naver search weather card.
type NaverWeather struct {
	client  *http.Client
	baseURL string
}

func NewNaverWeather() *NaverWeather {
	return &NaverWeather{
		client:  &http.Client{Timeout: 5 * time.Second},
		baseURL: "https://search.naver.com/search.naver",
	}
}

var nonTemp = regexp.MustCompile(`[^\d.-]`)

// Report renders the answer for the requested expression. Current conditions
// serve 오늘, the weekly card serves day offsets and the week, and monthly
// questions get a fixed not-supported answer.
func (n *NaverWeather) Report(ctx context.Context, location string, expr timeexpr.Expr, offset int) (string, error) {
	switch expr {
	case timeexpr.Today:
		return n.current(ctx, location)
	case timeexpr.Tomorrow, timeexpr.DayAfter, timeexpr.TwoAfter, timeexpr.DaysLater:
		return n.forecast(ctx, location, offset)
	case timeexpr.ThisWeek:
		return n.weekly(ctx, location)
	default:
		return fmt.Sprintf("%s 월간 예보 기능은 아직 구현되지 않았습니다.", location), nil
	}
}

func (n *NaverWeather) fetch(ctx context.Context, location string) (*goquery.Document, error) {
	query := url.QueryEscape(location + " 날씨")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"?query="+query, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "ko-KR,ko;q=0.9")

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather page fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather page status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse weather page: %w", err)
	}
	return doc, nil
}

func (n *NaverWeather) current(ctx context.Context, location string) (string, error) {
	doc, err := n.fetch(ctx, location)
	if err != nil {
		return "", err
	}

	var temp string
	doc.Find("span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.Contains(s.Text(), "현재 온도") {
			// The reading follows the label as a bare text node.
			if node := s.Nodes[0].NextSibling; node != nil {
				temp = strings.TrimSpace(node.Data)
			}
			return false
		}
		return true
	})

	var feels string
	doc.Find("dt").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.Contains(s.Text(), "체감") {
			feels = strings.TrimSpace(s.NextFiltered("dd").Text())
			return false
		}
		return true
	})

	if temp == "" || feels == "" {
		return "", fmt.Errorf("weather card for %s missing current conditions", location)
	}
	return fmt.Sprintf("%s의 현재 기온은 %s이며, 체감 온도는 %s입니다.", location, temp, feels), nil
}

type dailyForecast struct {
	day  string
	date string
	desc string
	low  string
	high string
}

func (n *NaverWeather) weeklyItems(doc *goquery.Document) []dailyForecast {
	var items []dailyForecast
	doc.Find("div.api_subject_bx._weekly_weather_wrap div.list_box._weekly_weather ul li").
		Each(func(_ int, li *goquery.Selection) {
			item := dailyForecast{
				day:  strings.TrimSpace(li.Find(".day").First().Text()),
				date: strings.TrimRight(strings.TrimSpace(li.Find(".date").First().Text()), "."),
				desc: "정보 없음",
				low:  "—",
				high: "—",
			}
			blinds := li.Find("span.blind")
			if blinds.Length() >= 2 {
				item.desc = strings.TrimSpace(blinds.Eq(1).Text())
			} else if desc := strings.TrimSpace(li.Find(".weather_desc").First().Text()); desc != "" {
				item.desc = desc
			}
			if low := li.Find("span.lowest").First(); low.Length() > 0 {
				item.low = nonTemp.ReplaceAllString(low.Text(), "") + "°"
			}
			if high := li.Find("span.highest").First(); high.Length() > 0 {
				item.high = nonTemp.ReplaceAllString(high.Text(), "") + "°"
			}
			items = append(items, item)
		})
	return items
}

func (n *NaverWeather) forecast(ctx context.Context, location string, dayOffset int) (string, error) {
	doc, err := n.fetch(ctx, location)
	if err != nil {
		return "", err
	}
	items := n.weeklyItems(doc)
	if len(items) == 0 || dayOffset >= len(items) {
		return "", fmt.Errorf("no forecast for %s at offset %d", location, dayOffset)
	}

	item := items[dayOffset]
	label := "모레"
	switch dayOffset {
	case 1:
		label = "내일"
	case 3:
		label = "글피"
	}
	if dayOffset > 3 {
		label = fmt.Sprintf("%d일 후", dayOffset)
	}
	return fmt.Sprintf("%s (%s) %s 날씨는 %s, 최저 %s, 최고 %s입니다.",
		label, item.date, location, item.desc, item.low, item.high), nil
}

func (n *NaverWeather) weekly(ctx context.Context, location string) (string, error) {
	doc, err := n.fetch(ctx, location)
	if err != nil {
		return "", err
	}
	items := n.weeklyItems(doc)
	if len(items) == 0 {
		return "", fmt.Errorf("no weekly forecast for %s", location)
	}

	lines := []string{fmt.Sprintf("%s의 이번 주 날씨 예보", location)}
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("%s(%s): %s, %s ~ %s",
			item.day, item.date, item.desc, item.low, item.high))
	}
	logger.Log.Infof("weekly forecast for %s: %d days", location, len(items))
	return strings.Join(lines, "\n"), nil
}
