package service

import "testing"

func TestResolveColumnExact(t *testing.T) {
	headers := []string{"SKU", "PRODUCTO", "PDV c/IVA UNIDAD"}
	got, ok := ResolveColumn(headers, []string{"SKU", "CODIGO"})
	if !ok || got != "SKU" {
		t.Fatalf("got %q ok=%v", got, ok)
	}
}

func TestResolveColumnSubstringAndCase(t *testing.T) {
	headers := []string{"  sku / codigo  ", "Descripción del producto"}
	got, ok := ResolveColumn(headers, []string{"SKU", "CODIGO"})
	if !ok || got != "  sku / codigo  " {
		t.Fatalf("got %q ok=%v", got, ok)
	}
	got, ok = ResolveColumn(headers, []string{"DESCRIPCIÓN"})
	if !ok || got != "Descripción del producto" {
		t.Fatalf("got %q ok=%v", got, ok)
	}
}

func TestResolveColumnCandidateOrderIsPriority(t *testing.T) {
	// both candidates match; the first candidate decides, not header order
	headers := []string{"CODIGO INTERNO", "SKU PROVEEDOR"}
	got, ok := ResolveColumn(headers, []string{"SKU", "CODIGO"})
	if !ok || got != "SKU PROVEEDOR" {
		t.Fatalf("got %q ok=%v", got, ok)
	}
}

func TestResolveColumnSecondPassFirstToken(t *testing.T) {
	// no candidate is a substring of any header, but the first token
	// "PVP" of "PVP Sugerido BULTO" is
	headers := []string{"PRECIO PVP X BULTO"}
	got, ok := ResolveColumn(headers, []string{"PVP Sugerido BULTO"})
	if !ok || got != "PRECIO PVP X BULTO" {
		t.Fatalf("got %q ok=%v", got, ok)
	}
}

func TestResolveColumnNoMatch(t *testing.T) {
	if got, ok := ResolveColumn([]string{"TOTAL", "IVA"}, []string{"SKU", "CODIGO"}); ok {
		t.Fatalf("expected no match, got %q", got)
	}
	if _, ok := ResolveColumn(nil, []string{"SKU"}); ok {
		t.Fatal("expected no match on empty headers")
	}
}
