package wire

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestID_AcceptsStringOrNumber(t *testing.T) {
	t.Parallel()

	var a, b DeleteRequest
	if err := json.Unmarshal([]byte(`{"id":"12"}`), &a); err != nil {
		t.Fatalf("string id: %v", err)
	}
	if err := json.Unmarshal([]byte(`{"id":12}`), &b); err != nil {
		t.Fatalf("number id: %v", err)
	}
	if a.ID != "12" || b.ID != "12" {
		t.Fatalf("a=%q b=%q", a.ID, b.ID)
	}
	var c DeleteRequest
	if err := json.Unmarshal([]byte(`{"id":1.5}`), &c); err == nil {
		t.Fatalf("expected error for fractional id")
	}
}

func TestMember_OptionalNestedValues(t *testing.T) {
	t.Parallel()

	var absent Member
	if err := json.Unmarshal([]byte(`{"name":"Ana"}`), &absent); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	dm := absent.ToDomain()
	if dm.Socials != nil || dm.ImageSettings != nil || dm.BusinessURL != nil {
		t.Fatalf("absent nested values must stay nil: %+v", dm)
	}

	var empty Member
	if err := json.Unmarshal([]byte(`{"name":"Ana","socials":{},"imageSettings":{"zoom":2}}`), &empty); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	dm = empty.ToDomain()
	if dm.Socials == nil {
		t.Fatalf("empty socials must be preserved as present")
	}
	if dm.ImageSettings == nil || dm.ImageSettings.Zoom != 2 || dm.ImageSettings.X != 50 || dm.ImageSettings.Y != 50 {
		t.Fatalf("imageSettings=%+v", dm.ImageSettings)
	}

	b, err := json.Marshal(MemberFromDomain(dm))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"socials":{}`) {
		t.Fatalf("expected empty socials object, got %s", b)
	}
}

func TestListHelpers_NeverNil(t *testing.T) {
	t.Parallel()

	b, _ := json.Marshal(GalleryFromDomain(nil))
	if string(b) != "[]" {
		t.Fatalf("got %s want []", b)
	}
}

func TestColumnCodecs_EmptyObject(t *testing.T) {
	t.Parallel()

	// An empty socials object is a present value with no links.
	s, err := DecodeSocials([]byte(`{}`))
	if err != nil || s == nil || s.Instagram != nil {
		t.Fatalf("DecodeSocials({})=%#v err=%v, want empty non-nil", s, err)
	}

	// Legacy rows carry a '{}' image_settings default; it reads as absent.
	is, err := DecodeImageSettings([]byte(`{}`))
	if err != nil || is != nil {
		t.Fatalf("DecodeImageSettings({})=%#v err=%v, want nil", is, err)
	}

	is, err = DecodeImageSettings([]byte(`{"zoom":2}`))
	if err != nil || is == nil || is.Zoom != 2 {
		t.Fatalf("DecodeImageSettings(zoom)=%#v err=%v", is, err)
	}
}
