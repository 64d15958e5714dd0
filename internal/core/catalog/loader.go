package catalog

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const defaultServings = 4

// Loader 從本機檔案或 HTTP 來源載入優惠與食譜 CSV
type Loader struct {
	dir           string
	dealSources   []config.Source
	recipeSources []config.Source
	useSamples    bool
	client        *resty.Client
}

// NewLoader 創建資料載入器
func NewLoader(cfg config.CatalogConfig) (*Loader, error) {
	dealSources, err := config.ParseSources(cfg.DealSources)
	if err != nil {
		return nil, fmt.Errorf("invalid deal sources: %w", err)
	}
	recipeSources, err := config.ParseSources(cfg.RecipeSources)
	if err != nil {
		return nil, fmt.Errorf("invalid recipe sources: %w", err)
	}

	client := resty.New().
		SetTimeout(cfg.FetchTimeout).
		SetRetryCount(2).
		SetHeader("Accept", "text/csv")

	return &Loader{
		dir:           cfg.Dir,
		dealSources:   dealSources,
		recipeSources: recipeSources,
		useSamples:    cfg.UseSamples,
		client:        client,
	}, nil
}

// Load 讀取所有來源並建立新的快照
// 找不到的來源只記錄警告；全部為空且未啟用示範資料時回傳錯誤
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	var deals []Deal
	for _, src := range l.dealSources {
		data, err := l.read(ctx, src.Path)
		if err != nil {
			common.LogWarn("deal source unavailable, skipping",
				zap.String("store", src.Name),
				zap.String("path", src.Path),
				zap.Error(err),
			)
			continue
		}
		parsed, err := ParseDeals(bytes.NewReader(data), src.Name)
		if err != nil {
			common.LogWarn("failed to parse deal source, skipping",
				zap.String("store", src.Name),
				zap.Error(err),
			)
			continue
		}
		common.LogInfo("loaded deals", zap.String("store", src.Name), zap.Int("count", len(parsed)))
		deals = append(deals, parsed...)
	}

	var recipes []Recipe
	for _, src := range l.recipeSources {
		data, err := l.read(ctx, src.Path)
		if err != nil {
			common.LogWarn("recipe source unavailable, skipping",
				zap.String("source", src.Name),
				zap.String("path", src.Path),
				zap.Error(err),
			)
			continue
		}
		parsed, err := ParseRecipes(bytes.NewReader(data), src.Name)
		if err != nil {
			common.LogWarn("failed to parse recipe source, skipping",
				zap.String("source", src.Name),
				zap.Error(err),
			)
			continue
		}
		common.LogInfo("loaded recipes", zap.String("source", src.Name), zap.Int("count", len(parsed)))
		recipes = append(recipes, parsed...)
	}

	if l.useSamples {
		if len(deals) == 0 {
			common.LogWarn("no deal files found, using sample deals")
			deals = SampleDeals()
		}
		if len(recipes) == 0 {
			common.LogWarn("no recipe files found, using sample recipes")
			recipes = SampleRecipes()
		}
	}

	if len(deals) == 0 && len(recipes) == 0 {
		return nil, fmt.Errorf("no catalog data could be loaded")
	}

	return NewSnapshot(common.GenerateUUID(), deals, recipes), nil
}

// read 讀取來源內容，http(s) 以 resty 下載，其餘視為 dir 下的檔案
func (l *Loader) read(ctx context.Context, path string) ([]byte, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		resp, err := l.client.R().SetContext(ctx).Get(path)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", path, err)
		}
		if resp.StatusCode() != http.StatusOK {
			return nil, fmt.Errorf("failed to fetch %s: status %d", path, resp.StatusCode())
		}
		return resp.Body(), nil
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(l.dir, path)
	}
	return os.ReadFile(path)
}

// csvTable 以小寫欄位名稱存取 CSV 列
type csvTable struct {
	index map[string]int
	rows  [][]string
}

func readCSV(r io.Reader) (*csvTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv has no header")
	}

	index := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		h = strings.TrimPrefix(h, "\ufeff")
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return &csvTable{index: index, rows: records[1:]}, nil
}

// get 依序嘗試多個欄位名稱
func (t *csvTable) get(row []string, names ...string) string {
	for _, name := range names {
		if i, ok := t.index[name]; ok && i < len(row) {
			if v := strings.TrimSpace(row[i]); v != "" {
				return v
			}
		}
	}
	return ""
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// ParseDeals 解析超市優惠 CSV（Category, Deal Name, Amount, Price）
func ParseDeals(r io.Reader, store string) ([]Deal, error) {
	table, err := readCSV(r)
	if err != nil {
		return nil, err
	}

	deals := make([]Deal, 0, len(table.rows))
	for _, row := range table.rows {
		if isBlank(row) {
			continue
		}
		name := table.get(row, "deal name", "name", "product")
		if name == "" {
			continue
		}
		deals = append(deals, Deal{
			Name:       name,
			AmountText: table.get(row, "amount"),
			PriceText:  table.get(row, "price"),
			Category:   table.get(row, "category"),
			Store:      store,
		})
	}
	return deals, nil
}

// ParseRecipes 解析食譜 CSV（id, title, ingredients, persons/servings）
func ParseRecipes(r io.Reader, source string) ([]Recipe, error) {
	table, err := readCSV(r)
	if err != nil {
		return nil, err
	}

	recipes := make([]Recipe, 0, len(table.rows))
	for i, row := range table.rows {
		if isBlank(row) {
			continue
		}
		title := table.get(row, "title", "name")
		ingredients := table.get(row, "ingredients")
		if title == "" || ingredients == "" {
			continue
		}

		id := table.get(row, "id")
		if id == "" {
			id = fmt.Sprintf("%s-%d-%s", strings.ToLower(source), i+1, slug(title))
		}

		servings := defaultServings
		if raw := table.get(row, "persons", "servings"); raw != "" {
			if n, err := strconv.Atoi(strings.Fields(raw)[0]); err == nil && n > 0 {
				servings = n
			}
		}

		recipes = append(recipes, Recipe{
			ID:              id,
			Title:           title,
			IngredientsText: ingredients,
			Servings:        servings,
			Source:          source,
		})
	}
	return recipes, nil
}

func slug(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "_")
}
