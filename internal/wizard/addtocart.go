package wizard

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"framex/internal/cart"
	"framex/internal/catalog"
)

// Photo is one chosen image ready for upload.
type Photo struct {
	Name        string
	ContentType string
	Data        []byte
}

// Uploader pushes one photo to remote storage and returns its public
// URL.
type Uploader interface {
	Upload(ctx context.Context, contentType, folder string, data []byte) (string, error)
}

// AddToCart converts a finalized configuration into cart lines.
//
// With photos present, each is uploaded in turn (progress reported as a
// percentage of completed uploads) and becomes its own quantity-1 line;
// a failed upload aborts the whole action and leaves the cart untouched.
// An empty frame, or a configuration with no photos, becomes a single
// line carrying the requested quantity and no image.
type AddToCart struct {
	Cart     *cart.Service
	Uploader Uploader
	Folder   string
	Logger   *zap.Logger
}

func (a *AddToCart) Run(
	ctx context.Context,
	sel Selection,
	d Derived,
	materials []catalog.Material,
	photos []Photo,
	progress func(pct int),
) error {
	if progress == nil {
		progress = func(int) {}
	}

	if sel.EmptyFrame || len(photos) == 0 {
		item := cart.NewEmptyFrameItem(
			d.FinalFrameSize,
			sel.Frame,
			d.Combined.TotalCost,
			d.Combined.Selling,
			sel.Quantity,
		)
		return a.Cart.Add(ctx, item)
	}

	cartMaterials := cart.BuildMaterials(materials, d.SelectedVariants)

	urls := make([]string, 0, len(photos))
	for i, p := range photos {
		url, err := a.Uploader.Upload(ctx, p.ContentType, a.Folder, p.Data)
		if err != nil {
			return fmt.Errorf("upload photo %d of %d: %w", i+1, len(photos), err)
		}
		urls = append(urls, url)
		progress(int(math.Round(float64(i+1) * 100 / float64(len(photos)))))
	}

	thumb := urls[0]
	items := make([]cart.Item, 0, len(urls))
	for _, url := range urls {
		items = append(items, cart.NewItem(cart.ItemParams{
			ProductType:  sel.ArtType,
			Size:         sel.BaseSizeText(),
			FrameSize:    d.FinalFrameSize,
			Materials:    cartMaterials,
			Frame:        sel.Frame,
			Image:        url,
			Thumb:        thumb,
			CostPrice:    d.Pricing.TotalCost,
			SellingPrice: d.Pricing.Selling,
			Quantity:     1,
		}))
	}

	if err := a.Cart.AddAll(ctx, items); err != nil {
		return err
	}

	a.Logger.Info("added configuration to cart",
		zap.Int("lines", len(items)),
		zap.String("frame_size", d.FinalFrameSize))
	return nil
}
