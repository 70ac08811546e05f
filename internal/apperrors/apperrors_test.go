package apperrors

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("lookup: %w", New(KindNotFound, "not found"))
	if KindOf(wrapped) != KindNotFound {
		t.Fatalf("KindOf = %s", KindOf(wrapped))
	}
	if KindOf(errors.New("plain")) != KindInternal {
		t.Fatal("plain errors must be internal")
	}
	if IsKind(nil, KindInternal) {
		t.Fatal("nil is no kind")
	}
}

func TestErrorMessage(t *testing.T) {
	cause := errors.New("boom")
	e := Wrap(KindInternal, "", cause)
	if e.Error() != "boom" || !errors.Is(e, cause) {
		t.Fatalf("unexpected wrap behavior: %v", e)
	}
	if RateLimit("", time.Second).Error() != string(KindRateLimited) {
		t.Fatal("expected kind as fallback message")
	}
}
