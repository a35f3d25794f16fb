package scraper

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// RodLauncher launches a fresh headless Chromium per Launch call.
type RodLauncher struct {
	bin string
}

func NewRodLauncher(bin string) *RodLauncher {
	return &RodLauncher{bin: bin}
}

// LookPath reports the browser binary that Launch will use, without
// downloading one.
func (l *RodLauncher) LookPath() (string, bool) {
	if l.bin != "" {
		_, err := os.Stat(l.bin)
		return l.bin, err == nil
	}
	return launcher.LookPath()
}

func (l *RodLauncher) Launch(ctx context.Context) (Browser, error) {
	ln := launcher.New().Context(ctx).Headless(true).Leakless(true)
	if l.bin != "" {
		ln = ln.Bin(l.bin)
	}
	controlURL, err := ln.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		ln.Kill()
		ln.Cleanup()
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	return &rodBrowser{browser: b, launcher: ln}, nil
}

type rodBrowser struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
}

func (b *rodBrowser) Open(ctx context.Context, url string) (Page, error) {
	p, err := b.browser.Context(ctx).Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	if err := p.Context(ctx).WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait load: %w", err)
	}
	return &rodPage{page: p}, nil
}

// Close shuts the browser down and waits for the process to exit.
func (b *rodBrowser) Close() error {
	err := b.browser.Close()
	b.launcher.Kill()
	b.launcher.Cleanup()
	if err != nil {
		return fmt.Errorf("close browser: %w", err)
	}
	return nil
}

type rodPage struct {
	page *rod.Page
}

func (p *rodPage) Title(ctx context.Context) (string, error) {
	info, err := p.page.Context(ctx).Info()
	if err != nil {
		return "", err
	}
	return info.Title, nil
}

func (p *rodPage) Rows(ctx context.Context, tableSelector, rowSelector string) ([]string, error) {
	page := p.page.Context(ctx)
	if _, err := page.Element(tableSelector); err != nil {
		return nil, fmt.Errorf("wait for %s: %w", tableSelector, err)
	}
	els, err := page.Elements(rowSelector)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", rowSelector, err)
	}

	rows := make([]string, 0, len(els))
	var errs []error
	for _, el := range els {
		text, err := el.Text()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		rows = append(rows, text)
	}
	if len(rows) == 0 && len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return rows, nil
}
