package service

import (
	"encoding/json"
	"os"
)

// DefaultSeedItems is the built-in knowledge set used when no seed file is
// configured. One retrieval unit per entry.
var DefaultSeedItems = []string{
	"工作時間是週一到週五，早上九點到下午六點。",
	"辦公室地址：台北市信義區市府路45號。",
	"請假需提前一天向主管申請，並在系統上填寫請假單。",
	"客服信箱：support@example.com，回覆時間為一個工作天內。",
	"公司 Wi-Fi 名稱為 OFFICE-5G，密碼請向行政同仁索取。",
}

// LoadSeedItems reads a JSON array of strings from path. An empty path
// returns the built-in defaults; a missing or malformed file is an error so
// misconfiguration fails loudly at startup rather than silently seeding the
// wrong data.
func LoadSeedItems(path string) ([]string, error) {
	if path == "" {
		return DefaultSeedItems, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var seeds []string
	if err := json.Unmarshal(raw, &seeds); err != nil {
		return nil, err
	}
	return seeds, nil
}
