package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"framex/internal/cart"
	"framex/internal/catalog"
	"framex/internal/checkout"
	"framex/internal/config"
	"framex/internal/geometry"
	"framex/internal/storage"
	"framex/internal/upload"
	"framex/internal/wizard"
	"framex/pkg/api"
	"framex/pkg/logger"
	"framex/pkg/redis"
)

// framex quote [-session ID] [-size 4x6] [-mat 1] [-color White] [-frame CODE] [-qty 1] [-empty] [-add]
//   prices a configuration against the live catalog; the configuration
//   persists under the session id, so later invocations resume it
// framex export [-out orders]
//   writes the local order archive to an Excel report

func main() {
	zapLogger, err := logger.New()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer zapLogger.Sync()

	cfg, err := config.Load()
	if err != nil {
		zapLogger.Fatal("Failed to load config", zap.Error(err))
	}

	redisClient := redis.New(redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()

	apiClient := api.NewClient(cfg.APIBaseURL, cfg.APIKey, cfg.HTTPRequestTimeout, zapLogger)

	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	mode := "quote"
	args := os.Args[1:]
	if len(args) > 0 && args[0][0] != '-' {
		mode = args[0]
		args = args[1:]
	}

	switch mode {
	case "quote":
		err = runQuote(ctx, args, cfg, apiClient, redisClient, zapLogger)
	case "export":
		err = runExport(ctx, args, cfg, redisClient, zapLogger)
	default:
		err = fmt.Errorf("unknown command %q", mode)
	}
	if err != nil {
		zapLogger.Fatal("Command failed", zap.Error(err))
	}
}

func runQuote(ctx context.Context, args []string, cfg *config.Config, apiClient *api.Client, redisClient *redis.Client, zapLogger *zap.Logger) error {
	fs := flag.NewFlagSet("quote", flag.ExitOnError)
	sessionID := fs.String("session", "local", "session id; quotes resume under this id")
	sizeText := fs.String("size", "", "base art size, e.g. 4x6 (default: last session value)")
	matInches := fs.Float64("mat", 0, "mat width in inches (0 = no mat)")
	matColor := fs.String("color", "", "mat color name")
	frameCode := fs.String("frame", "", "moulding product code")
	qty := fs.Int("qty", 0, "quantity (default: last session value)")
	empty := fs.Bool("empty", false, "price an empty frame (no photo)")
	add := fs.Bool("add", false, "add the quoted configuration to the cart")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cartSvc := cart.NewService(ctx, cart.NewRedisStore(redisClient, cfg.CartKey), zapLogger)
	session := wizard.NewStateStorage(redisClient, cfg.SessionTTL)

	state, err := session.Get(ctx, *sessionID)
	if err != nil {
		zapLogger.Warn("Failed to restore session", zap.Error(err))
		state = wizard.State{Step: wizard.StepServiceSelection}
	}

	// Catalog loads are tolerant: a failed fetch degrades to "price not
	// yet available" instead of aborting the session.
	materials, err := apiClient.Materials(ctx)
	if err != nil {
		zapLogger.Warn("Failed to load materials", zap.Error(err))
	}
	factors, err := apiClient.CostFactors(ctx)
	if err != nil {
		zapLogger.Warn("Failed to load cost factors", zap.Error(err))
	}

	// Flags overlay whatever the session already holds.
	sel := state.Selection
	if *sizeText != "" {
		sel.ArtSize = *sizeText
	}
	if sel.ArtSize == "" {
		sel.ArtSize = "4x6"
	}
	if *qty > 0 {
		sel.Quantity = *qty
	}
	if sel.Quantity < 1 {
		sel.Quantity = 1
	}
	sel.EmptyFrame = *empty
	sel.ArtType = "Photo Frame"
	if *empty {
		sel.ArtType = cart.ProductTypeEmptyFrame
	}

	if *frameCode != "" {
		mouldings, err := apiClient.Mouldings(ctx)
		if err != nil {
			zapLogger.Warn("Failed to load mouldings", zap.Error(err))
		}
		for i := range mouldings {
			if mouldings[i].Code == *frameCode {
				sel.Frame = &mouldings[i]
				break
			}
		}
		if sel.Frame == nil {
			zapLogger.Warn("Moulding code not found in catalog", zap.String("code", *frameCode))
		}
	}

	// Resolve the requested mat against the catalog's (or fallback)
	// width options, then the color.
	d := wizard.Derive(sel, materials, factors)
	if *matInches > 0 {
		for i := range d.MatWidthOptions {
			v := d.MatWidthOptions[i]
			if geometry.ThicknessToInches(v.Thickness) == *matInches {
				sel.SetMatWidth(&v)
				break
			}
		}
		if *matColor != "" {
			for i := range d.MatColorOptions {
				v := d.MatColorOptions[i]
				if catalog.Normalize(v.Thickness) == catalog.Normalize(*matColor) {
					sel.SetMatColor(&v)
					break
				}
			}
		}
		d = wizard.Derive(sel, materials, factors)
	}

	state.Selection = sel
	state.Step = wizard.StepPreview
	if err := session.Save(ctx, *sessionID, state); err != nil {
		zapLogger.Warn("Failed to persist session", zap.Error(err))
	}

	if *add {
		adder := &wizard.AddToCart{
			Cart:     cartSvc,
			Uploader: upload.NewS3Uploader(apiClient, zapLogger),
			Folder:   cfg.UploadFolder,
			Logger:   zapLogger,
		}
		if err := adder.Run(ctx, sel, d, materials, nil, nil); err != nil {
			return err
		}
		if err := session.SetStep(ctx, *sessionID, wizard.StepCheckout); err != nil {
			zapLogger.Warn("Failed to advance session step", zap.Error(err))
		}
	}

	fmt.Printf("Art size:    %s\n", geometry.FormatSize(sel.BaseSizeText()))
	fmt.Printf("Frame size:  %s\n", geometry.FormatSize(d.FinalFrameSize))
	if sel.Frame != nil {
		fmt.Printf("Moulding:    %s (%s)\n", sel.Frame.Name, sel.Frame.Code)
	}
	if !d.Combined.Ready {
		fmt.Println("Price:       not yet available")
	} else {
		fmt.Printf("Cost:        %s\n", checkout.FormatMoney(d.Combined.TotalCost))
		fmt.Printf("Price:       %s x %d = %s\n",
			checkout.FormatMoney(d.Combined.Selling),
			sel.Quantity,
			checkout.FormatMoney(d.Combined.Selling*float64(sel.Quantity)))
	}
	fmt.Printf("Cart:        %d item(s), %s\n",
		cartSvc.Count(), checkout.FormatMoney(cartSvc.Total()))
	return nil
}

func runExport(ctx context.Context, args []string, cfg *config.Config, redisClient *redis.Client, zapLogger *zap.Logger) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("out", "orders_"+time.Now().Format("20060102_1504"), "report file name (without extension)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !cfg.ArchiveEnabled() {
		return fmt.Errorf("order archive is not configured (set DB_HOST)")
	}

	archive, err := storage.NewPostgresArchive(ctx, storage.Config{
		Host:            cfg.DBHost,
		Port:            cfg.DBPort,
		User:            cfg.DBUser,
		Password:        cfg.DBPassword,
		DBName:          cfg.DBName,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
	}, redisClient, zapLogger)
	if err != nil {
		return err
	}
	defer archive.Close()

	path, err := archive.ExportOrdersToExcel(ctx, *out)
	if err != nil {
		return err
	}

	stats, err := archive.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Exported %d order(s) to %s (revenue %s, profit %s)\n",
		stats.TotalOrders, path,
		checkout.FormatMoney(stats.TotalRevenue),
		checkout.FormatMoney(stats.TotalProfit))
	return nil
}
