package main

import (
	groundroll "Told/internal/calc/groundroll"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

func TestParseCommand(t *testing.T) {
	req, ok, err := ParseCommand("/groundroll 2000 25 3000 29.92")
	if !ok || err != nil {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
	if *req.WeightLb != 2000 || *req.OATC != 25 || *req.ElevationFt != 3000 || *req.AltimeterInHg != 29.92 {
		t.Fatalf("request: %+v", req)
	}

	req, ok, err = ParseCommand("/groundroll@told_bot 2100")
	if !ok || err != nil || *req.WeightLb != 2100 || req.OATC != nil {
		t.Fatalf("partial: ok=%v err=%v %+v", ok, err, req)
	}
	in, _, err := req.Resolve()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if in.OATC != groundroll.DefaultOAT || in.AltimeterInHg != groundroll.DefaultAltimeter {
		t.Fatalf("defaults not applied: %+v", in)
	}

	if _, ok, _ := ParseCommand("hello"); ok {
		t.Fatal("plain text accepted as command")
	}
	if _, ok, err := ParseCommand("/groundroll heavy"); !ok || err == nil {
		t.Fatal("non-numeric value accepted")
	}
	if _, ok, err := ParseCommand("/groundroll 1 2 3 4 5"); !ok || err == nil {
		t.Fatal("extra values accepted")
	}
}

func TestCaption(t *testing.T) {
	in := groundroll.Input{WeightLb: 2325, OATC: 15, ElevationFt: 1000, AltimeterInHg: 29.92}
	res, err := groundroll.Calculate(in, groundroll.Options{})
	if err != nil {
		t.Fatal(err)
	}
	c := Caption(in, res)
	if !strings.Contains(c, "Density altitude: 1240 ft") || !strings.Contains(c, "Ground roll: 1185 ft") {
		t.Fatalf("caption: %q", c)
	}
	if strings.Contains(c, "extrapolated") {
		t.Fatalf("in-range caption flagged: %q", c)
	}
}

func TestHandleMessageSendsPhoto(t *testing.T) {
	var mu sync.Mutex
	var methods []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		methods = append(methods, r.URL.Path)
		mu.Unlock()
		if strings.HasSuffix(r.URL.Path, "/sendPhoto") {
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Errorf("multipart: %v", err)
			}
			if r.FormValue("chat_id") != "42" {
				t.Errorf("chat_id: %q", r.FormValue("chat_id"))
			}
			if _, _, err := r.FormFile("photo"); err != nil {
				t.Errorf("photo: %v", err)
			}
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	bot := &Bot{Token: "T", BaseURL: srv.URL, Client: srv.Client()}
	bot.handleMessage(context.Background(), &Message{Chat: Chat{ID: 42}, Text: "/groundroll 2325"})
	bot.handleMessage(context.Background(), &Message{Chat: Chat{ID: 42}, Text: "hi"})

	mu.Lock()
	defer mu.Unlock()
	want := []string{"/botT/sendPhoto", "/botT/sendMessage"}
	if len(methods) != len(want) || methods[0] != want[0] || methods[1] != want[1] {
		t.Fatalf("calls: %v", methods)
	}
}
