// pricebook/automation/automation.go
package automation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
)

// DownloadPriceSheet logs in to the distributor's ordering portal and
// downloads the latest price-sheet export into saveDir.
func DownloadPriceSheet(portalURL, userId, password, saveDir string) (string, error) {
	if portalURL == "" {
		return "", fmt.Errorf("portal URL is not configured")
	}
	if _, err := os.Stat(saveDir); os.IsNotExist(err) {
		if err := os.MkdirAll(saveDir, 0755); err != nil {
			return "", fmt.Errorf("failed to create save folder: %v", err)
		}
	}

	// Leakless(false) avoids antivirus false positives on the helper binary.
	u := launcher.New().
		Headless(true).
		Leakless(false).
		MustLaunch()

	browser := rod.New().ControlURL(u).MustConnect()
	defer browser.MustClose()

	fmt.Println("Opening distributor portal...")
	page := browser.MustPage(portalURL)
	page.MustWaitStable()

	fmt.Println("Entering login credentials...")
	if err := rod.Try(func() {
		page.MustElement("[name='username'], [name='userid']").MustInput(userId)
	}); err != nil {
		return "", fmt.Errorf("username field not found: %v", err)
	}

	if err := rod.Try(func() {
		page.MustElement("[name='password'], [type='password']").MustInput(password)
	}); err != nil {
		return "", fmt.Errorf("password field not found: %v", err)
	}

	loginBtn, err := page.ElementR("input, button, a", "(?i)log ?in|sign ?in")
	if err == nil {
		loginBtn.MustClick()
	} else {
		page.KeyActions().Press(input.Enter).MustDo()
	}

	page.MustWaitStable()

	fmt.Println("Navigating to price sheet downloads...")
	if err := rod.Try(func() {
		page.MustElementR("a, span, div", "(?i)price (sheet|list)s?|order guide").MustClick()
	}); err != nil {
		return "", fmt.Errorf("price sheet menu not found (login may have failed): %v", err)
	}
	page.MustWaitStable()

	wait := browser.MustWaitDownload()
	go page.MustHandleDialog()

	fmt.Println("Requesting latest export...")
	clicked := false
	selectors := []string{
		"a[href*='export']",
		"input[type='button']",
		"button",
	}
	for _, sel := range selectors {
		if el, err := page.ElementR(sel, "(?i)download|export|csv"); err == nil {
			el.MustClick()
			clicked = true
			break
		}
	}
	if !clicked {
		return "", fmt.Errorf("download button not found on portal page")
	}

	fmt.Println("Waiting for download...")

	var fileData []byte
	resultChan := make(chan string)

	go func() {
		defer func() {
			_ = recover()
		}()
		data := wait()
		fileData = data
		resultChan <- "downloaded"
	}()

	go func() {
		// Watch for the portal's "no new export" message for up to 30s.
		for i := 0; i < 60; i++ {
			time.Sleep(500 * time.Millisecond)

			if body, err := page.Element("body"); err == nil {
				text, _ := body.Text()
				if strings.Contains(strings.ToLower(text), "no export available") {
					resultChan <- "no_data"
					return
				}
			}
		}
	}()

	select {
	case res := <-resultChan:
		if res == "no_data" {
			return "NO_DATA", nil
		}
	case <-time.After(60 * time.Second):
		return "", fmt.Errorf("timed out waiting for the portal download")
	}

	if len(fileData) == 0 {
		return "", fmt.Errorf("downloaded file is empty")
	}

	fileName := fmt.Sprintf("pricesheet_%s.csv", time.Now().Format("20060102150405"))
	destPath := filepath.Join(saveDir, fileName)

	if err := os.WriteFile(destPath, fileData, 0644); err != nil {
		return "", fmt.Errorf("failed to write downloaded file: %v", err)
	}

	fmt.Printf("Download complete: %s\n", destPath)
	return destPath, nil
}
