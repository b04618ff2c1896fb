package orders

import (
	"context"
	"fmt"
	"strings"

	"scanbill_cli/internal/scanbill"

	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

type ReceiptAPI interface {
	GetReceipt(ctx context.Context, orderID string) (scanbill.Receipt, error)
}

// ReceiptViewer fetches a single order's durable receipt and renders its
// shareable URL as a scannable 2-D barcode.
type ReceiptViewer struct {
	api        ReceiptAPI
	webBaseURL string
	logger     *zap.Logger
}

func NewReceiptViewer(api ReceiptAPI, webBaseURL string, logger *zap.Logger) *ReceiptViewer {
	return &ReceiptViewer{
		api:        api,
		webBaseURL: strings.TrimRight(webBaseURL, "/"),
		logger:     logger.Named("receipt"),
	}
}

func (v *ReceiptViewer) Fetch(ctx context.Context, orderID string) (scanbill.Receipt, error) {
	return v.api.GetReceipt(ctx, orderID)
}

// ShareURL is the public web address of the receipt, the same one the
// browser client would be showing. It is what the QR code encodes.
func (v *ReceiptViewer) ShareURL(orderID string) string {
	return fmt.Sprintf("%s/receipt/%s", v.webBaseURL, orderID)
}

// QRTerminal renders the share URL as a block-character QR code suitable
// for printing straight into the terminal.
func (v *ReceiptViewer) QRTerminal(orderID string) (string, error) {
	code, err := qrcode.New(v.ShareURL(orderID), qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("encode receipt qr: %w", err)
	}
	return code.ToSmallString(false), nil
}

// SaveQRPNG writes the share URL's QR code as a PNG, the closest thing a
// terminal has to the browser's native share sheet.
func (v *ReceiptViewer) SaveQRPNG(orderID, path string) error {
	if err := qrcode.WriteFile(v.ShareURL(orderID), qrcode.Medium, 256, path); err != nil {
		return fmt.Errorf("write receipt qr: %w", err)
	}
	v.logger.Info("receipt qr written",
		zap.String("order_id", orderID),
		zap.String("path", path),
	)
	return nil
}
