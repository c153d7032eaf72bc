package logger

import "github.com/ideamans/go-l10n"

func init() {
	// Traditional Chinese catalogue, selected when the UI language is zh.
	l10n.Register("zh", l10n.LexiconMap{
		// Loading
		"Loaded %s":               "已載入 %s",
		"Ignored dropped file %s": "已忽略拖入的檔案 %s",
		"Cannot open %s: %s":      "無法開啟 %s：%s",
		"Closed %s":               "已關閉 %s",
		"Cannot close %s: %s":     "無法關閉 %s：%s",

		// Playback
		"Playback %s":                       "播放狀態：%s",
		"Reached end of stream at frame %d": "已播放至最後一幀 %d",
		"Frame %d could not be decoded: %s": "第 %d 幀解碼失敗：%s",
		"Rejected frame input %q":           "已忽略無效的幀數輸入 %q",
		"Slider %d / %d":                    "滑桿 %d / %d",
		"Frame field %s":                    "幀數欄位 %s",
		"Cannot render frame %d: %s":        "無法顯示第 %d 幀：%s",

		// Marks
		"Start frame set to %d": "開始幀設置為：%d",
		"End frame set to %d":   "結束幀設置為：%d",

		// Trim
		"Trimming frames %d-%d of %s": "剪輯第 %d-%d 幀：%s",
		"Trim skipped: %s":            "未執行剪輯：%s",
		"Trim finished: %s":           "影片已剪輯完成！儲存為：%s",
		"Trim failed: %s":             "影片剪輯失敗：%s",
		"Trim cancelled":              "剪輯已取消",
		"Cannot reveal %s: %s":        "無法開啟檔案總管：%s：%s",
		"Preview written to %s":       "預覽已寫入 %s",
	})
}
