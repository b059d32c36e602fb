package telegram

import (
	"fmt"
	"io"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// maxDownloadBytes bounds media downloads; Telegram photos and voice notes
// stay well under this.
const maxDownloadBytes = 20 << 20

// fileFetcher downloads Telegram-hosted media by file ID.
type fileFetcher struct {
	api        *tgbotapi.BotAPI
	httpClient *http.Client
}

func newFileFetcher(api *tgbotapi.BotAPI) *fileFetcher {
	return &fileFetcher{
		api:        api,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (f *fileFetcher) Download(fileID string) ([]byte, error) {
	url, err := f.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("resolve file %s: %w", fileID, err)
	}
	resp, err := f.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("download file %s: %w", fileID, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file %s: status %d", fileID, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadBytes))
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", fileID, err)
	}
	return data, nil
}
