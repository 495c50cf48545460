package main

import (
	groundroll "Told/internal/calc/groundroll"
	render "Told/internal/calc/render"
	config "Told/internal/config"
	"Told/internal/log"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"
)

const usage = "Usage: /groundroll <weight lb> [OAT C] [elevation ft] [altimeter inHg]\nMissing values default to 2325 lb, 15 C, 1000 ft, 29.92 inHg."

type Update struct {
	UpdateID int      `json:"update_id"`
	Message  *Message `json:"message"`
}

type Message struct {
	MessageID int    `json:"message_id"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text"`
}

type Chat struct {
	ID int64 `json:"id"`
}

type UpdateResponse struct {
	OK     bool     `json:"ok"`
	Result []Update `json:"result"`
}

type Bot struct {
	Token   string
	BaseURL string
	Client  *http.Client
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := log.Init(cfg.Debug); err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer log.Sync()
	if cfg.BotToken == "" {
		log.Fatal("TOKEN_BOT missing")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	bot := &Bot{
		Token:   cfg.BotToken,
		BaseURL: "https://api.telegram.org",
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
	bot.Run(ctx)
}

func (b *Bot) Run(ctx context.Context) {
	offset := 0
	for ctx.Err() == nil {
		updates, err := b.getUpdates(ctx, offset)
		if err != nil {
			log.Warnw("getUpdates failed", "error", err)
			sleep(ctx, 2*time.Second)
			continue
		}
		for _, u := range updates {
			offset = u.UpdateID + 1
			if u.Message != nil {
				b.handleMessage(ctx, u.Message)
			}
		}
		sleep(ctx, time.Second)
	}
}

func sleep(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}

// ParseCommand reads "/groundroll w oat elev alt"; trailing values may be
// omitted. ok is false for any other text.
func ParseCommand(text string) (groundroll.Request, bool, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return groundroll.Request{}, false, nil
	}
	cmd := strings.SplitN(fields[0], "@", 2)[0]
	if cmd != "/groundroll" {
		return groundroll.Request{}, false, nil
	}
	if len(fields) > 5 {
		return groundroll.Request{}, true, fmt.Errorf("too many values")
	}
	var req groundroll.Request
	dst := []**float64{&req.WeightLb, &req.OATC, &req.ElevationFt, &req.AltimeterInHg}
	for i, s := range fields[1:] {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return groundroll.Request{}, true, fmt.Errorf("%q is not a number", s)
		}
		*dst[i] = &v
	}
	return req, true, nil
}

// Caption summarises a result for the chat.
func Caption(in groundroll.Input, res groundroll.Result) string {
	s := fmt.Sprintf("%.0f lb, %.1f C, %.0f ft, %.2f inHg\nDensity altitude: %.0f ft\nGround roll: %.0f ft",
		in.WeightLb, in.OATC, in.ElevationFt, in.AltimeterInHg, res.DensityAltitudeFt, res.GroundRollFt)
	if res.OutOfRange {
		s += "\nOutside the chart, extrapolated."
	}
	return s
}

func (b *Bot) handleMessage(ctx context.Context, m *Message) {
	req, ok, err := ParseCommand(m.Text)
	if !ok {
		b.sendMessage(ctx, m.Chat.ID, usage)
		return
	}
	if err != nil {
		b.sendMessage(ctx, m.Chat.ID, err.Error()+"\n"+usage)
		return
	}
	in, opts, err := req.Resolve()
	if err != nil {
		b.sendMessage(ctx, m.Chat.ID, err.Error())
		return
	}
	res, err := groundroll.Calculate(in, opts)
	if err != nil {
		b.sendMessage(ctx, m.Chat.ID, err.Error())
		return
	}
	img, err := render.PNGBytes(groundroll.BuildChart(groundroll.Reference, in.WeightLb, res))
	if err != nil {
		log.Errorw("chart render failed", "error", err)
		b.sendMessage(ctx, m.Chat.ID, Caption(in, res))
		return
	}
	if err := b.sendPhoto(ctx, m.Chat.ID, img, Caption(in, res)); err != nil {
		log.Warnw("sendPhoto failed", "chat", m.Chat.ID, "error", err)
	}
}

func (b *Bot) url(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", b.BaseURL, b.Token, method)
}

func (b *Bot) getUpdates(ctx context.Context, offset int) ([]Update, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s?timeout=20&offset=%d", b.url("getUpdates"), offset), nil)
	if err != nil {
		return nil, err
	}
	res, err := b.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	var out UpdateResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, err
	}
	if !out.OK {
		return nil, fmt.Errorf("getUpdates: not ok")
	}
	return out.Result, nil
}

func (b *Bot) post(ctx context.Context, method, contentType string, body io.Reader) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.url(method), body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	res, err := b.Client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: status %d", method, res.StatusCode)
	}
	return nil
}

func (b *Bot) sendMessage(ctx context.Context, chatID int64, text string) {
	payload, _ := json.Marshal(map[string]any{"chat_id": chatID, "text": text})
	if err := b.post(ctx, "sendMessage", "application/json", bytes.NewReader(payload)); err != nil {
		log.Warnw("sendMessage failed", "chat", chatID, "error", err)
	}
}

func (b *Bot) sendPhoto(ctx context.Context, chatID int64, png []byte, caption string) error {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.WriteField("chat_id", strconv.FormatInt(chatID, 10))
	mw.WriteField("caption", caption)
	fw, err := mw.CreateFormFile("photo", "groundroll.png")
	if err != nil {
		return err
	}
	if _, err := fw.Write(png); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}
	return b.post(ctx, "sendPhoto", mw.FormDataContentType(), &body)
}
