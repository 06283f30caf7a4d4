package receipt

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"github.com/yeqown/go-qrcode"
)

// FileName is the name a downloaded receipt is offered under.
const FileName = "booking-confirmation.pdf"

const (
	detailX    = 10.0
	infoX      = 100.0
	firstRowY  = 30.0
	rowPitch   = 10.0
	titleY     = 20.0
	qrSizeMM   = 40.0
	titleSize  = 22.0
	bodySize   = 12.0
	fontFamily = "Helvetica"
)

// Data is what a booking receipt shows. Date and Time come from the event
// as the backend stores them.
type Data struct {
	BookingID       int64
	FullName        string
	EventName       string
	Location        string
	Date            string
	Time            string
	NumberOfTickets int
	TotalPrice      decimal.Decimal
}

type Row struct {
	Label string
	Value string
}

// Rows lists the receipt table in print order.
func (d Data) Rows() []Row {
	return []Row{
		{"Booking ID", strconv.FormatInt(d.BookingID, 10)},
		{"Booking under Name", d.FullName},
		{"Event Name", d.EventName},
		{"Location of the Event", d.Location},
		{"Date of the Event", FormatDate(d.Date)},
		{"Time of the Event", FormatTime(d.Time)},
		{"Number of Tickets", strconv.Itoa(d.NumberOfTickets)},
		{"Total Price", "Rs. " + d.TotalPrice.String()},
	}
}

// FormatDate turns yyyy-mm-dd into dd-mm-yyyy. Anything else is returned as is.
func FormatDate(s string) string {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return s
	}
	return t.Format("02-01-2006")
}

// FormatTime turns HH:mm or HH:mm:ss into a 12 hour clock, e.g. 7:30 PM.
func FormatTime(s string) string {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("3:04 PM")
		}
	}
	return s
}

type Renderer struct {
	// withQR adds a QR code of the booking id under the table.
	withQR bool

	// now stamps the document metadata.
	now func() time.Time
}

func NewRenderer(withQR bool) *Renderer {
	return &Renderer{withQR: withQR, now: time.Now}
}

// Render writes the receipt PDF to w.
func (r *Renderer) Render(w io.Writer, d Data) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Confirmation", true)
	pdf.SetCreator("imagique", false)
	pdf.SetCreationDate(r.now())
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	title := "Booking Confirmation"
	pdf.SetFont(fontFamily, "", titleSize)
	pageW, _ := pdf.GetPageSize()
	pdf.Text((pageW-pdf.GetStringWidth(title))/2, titleY, title)

	y := firstRowY
	pdf.SetFont(fontFamily, "B", bodySize)
	pdf.Text(detailX, y, "Detail")
	pdf.Text(infoX, y, "Information")
	y += rowPitch

	pdf.SetFont(fontFamily, "", bodySize)
	for _, row := range d.Rows() {
		pdf.Text(detailX, y, row.Label)
		pdf.Text(infoX, y, tr(row.Value))
		y += rowPitch
	}

	if r.withQR {
		path, err := bookingQR(d.BookingID)
		if err != nil {
			return fmt.Errorf("receipt: %w", err)
		}
		defer os.Remove(path)
		pdf.ImageOptions(path, detailX, y, qrSizeMM, qrSizeMM, false, fpdf.ImageOptions{ImageType: "JPG"}, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("receipt: render: %w", err)
	}
	return nil
}

// Save renders into dir under a per-booking name and returns the path.
func (r *Renderer) Save(dir string, d Data) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("receipt: mkdir %s: %w", dir, err)
	}
	path := filepath.Join(dir, SavedName(d))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("receipt: create %s: %w", path, err)
	}
	if err := r.Render(f, d); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("receipt: close %s: %w", path, err)
	}
	return path, nil
}

// SavedName is the file name used when receipts are kept on disk.
func SavedName(d Data) string {
	return slug.Make(fmt.Sprintf("booking %d %s", d.BookingID, d.EventName)) + ".pdf"
}

// bookingQR writes a JPEG QR code of the booking id to a temp file.
func bookingQR(bookingID int64) (string, error) {
	qrc, err := qrcode.New(strconv.FormatInt(bookingID, 10))
	if err != nil {
		return "", fmt.Errorf("qrcode.New: %w", err)
	}
	f, err := os.CreateTemp("", "booking-qr-*.jpeg")
	if err != nil {
		return "", fmt.Errorf("qr temp file: %w", err)
	}
	path := f.Name()
	f.Close()

	if err := qrc.Save(path); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("qrc.Save: %w", err)
	}
	return path, nil
}
