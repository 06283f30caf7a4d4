package backend

import (
	"bytes"
	"fmt"
	"mime/multipart"

	"imagique/models"
)

// formWriter accumulates a multipart body, remembering the first error so
// callers can chain writes and check once.
type formWriter struct {
	buf bytes.Buffer
	mw  *multipart.Writer
	err error
}

func newFormWriter() *formWriter {
	fw := &formWriter{}
	fw.mw = multipart.NewWriter(&fw.buf)
	return fw
}

func (fw *formWriter) field(name, value string) {
	if fw.err != nil {
		return
	}
	fw.err = fw.mw.WriteField(name, value)
}

func (fw *formWriter) file(name string, img *models.ImageFile) {
	if fw.err != nil || img == nil {
		return
	}
	w, err := fw.mw.CreateFormFile(name, img.Name)
	if err != nil {
		fw.err = err
		return
	}
	_, fw.err = w.Write(img.Content)
}

// close finishes the body and returns it with its content type.
func (fw *formWriter) close() (*bytes.Buffer, string, error) {
	if fw.err == nil {
		fw.err = fw.mw.Close()
	}
	if fw.err != nil {
		return nil, "", fmt.Errorf("multipart: %w", fw.err)
	}
	return &fw.buf, fw.mw.FormDataContentType(), nil
}

// EventPayload is everything sent in the event create/update form. Nested
// rows use the indexed field names the backend binds, such as
// sponsors[0].sponsorName and venue.capacity.
type EventPayload struct {
	UserDetailsID int64
	Draft         models.EventDraft
	Sponsors      []models.SponsorDraft
	TicketPrices  []models.TicketPriceDraft
	Venue         models.VenueDraft
}

func (p EventPayload) encode() (*bytes.Buffer, string, error) {
	fw := newFormWriter()
	fw.field("userDetailsId", itoa(p.UserDetailsID))
	fw.field("eventName", p.Draft.EventName)
	fw.field("description", p.Draft.Description)
	fw.field("date", p.Draft.Date)
	fw.field("time", p.Draft.Time)
	fw.field("categoryId", p.Draft.CategoryID)
	fw.file("image", p.Draft.Image)

	for i, s := range p.Sponsors {
		fw.field(fmt.Sprintf("sponsors[%d].sponsorName", i), s.SponsorName)
		fw.field(fmt.Sprintf("sponsors[%d].contactNumber", i), s.ContactNumber)
	}
	for i, tp := range p.TicketPrices {
		fw.field(fmt.Sprintf("ticketPrices[%d].priceCategory", i), tp.PriceCategory)
		fw.field(fmt.Sprintf("ticketPrices[%d].price", i), tp.Price)
	}

	fw.field("venue.venueLocation", p.Venue.VenueLocation)
	fw.field("venue.mapsLink", p.Venue.MapsLink)
	fw.field("venue.capacity", p.Venue.Capacity)
	return fw.close()
}

func encodeCategory(d models.CategoryDraft) (*bytes.Buffer, string, error) {
	fw := newFormWriter()
	fw.field("categoryName", d.CategoryName)
	fw.file("image", d.Image)
	return fw.close()
}
