package estimate

import "testing"

func TestClassifyKeywords(t *testing.T) {
	cases := []struct {
		name string
		want Category
	}{
		{"리뷰비", CategoryReview},
		{"구매평 작성", CategoryReview},
		{"배송비", CategoryDelivery},
		{"제품 단가", CategoryProduct},
		{"체험단 대행", CategoryProduct},
		{"6/7 체험단", CategoryProduct},
		{"12/31 마감", CategoryProduct},
		{"기타 항목", CategoryOther},
		{"", CategoryOther},
	}
	for _, tc := range cases {
		if got := Classify(tc.name); got != tc.want {
			t.Fatalf("Classify(%q): expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestClassifyFirstMatchWins(t *testing.T) {
	// Review keywords take precedence over delivery and product keywords.
	if got := Classify("리뷰 배송 제품"); got != CategoryReview {
		t.Fatalf("expected review, got %s", got)
	}
	// Delivery outranks product.
	if got := Classify("제품 배송비"); got != CategoryDelivery {
		t.Fatalf("expected delivery, got %s", got)
	}
	// The date prefix only matters when no keyword matched.
	if got := Classify("6/7 리뷰"); got != CategoryReview {
		t.Fatalf("expected review, got %s", got)
	}
}

func TestClassifyDatePrefixMustLead(t *testing.T) {
	if got := Classify("마감 6/7"); got != CategoryOther {
		t.Fatalf("expected other for non-leading date, got %s", got)
	}
}

func TestCategoryIsValid(t *testing.T) {
	for _, c := range Categories {
		if !c.IsValid() {
			t.Fatalf("expected %s to be valid", c)
		}
	}
	if Category("bogus").IsValid() {
		t.Fatalf("expected bogus category to be invalid")
	}
}
