package billing

// metadataBuilder collects Stripe metadata key/value pairs. Optional fields
// are added only when non-empty: absent means omitted, never "".
type metadataBuilder struct {
	m map[string]string
}

func newMetadata() *metadataBuilder {
	return &metadataBuilder{m: make(map[string]string)}
}

// with adds the key unconditionally
func (b *metadataBuilder) with(key, value string) *metadataBuilder {
	b.m[key] = value
	return b
}

// withOptional adds the key only when the value is non-empty
func (b *metadataBuilder) withOptional(key, value string) *metadataBuilder {
	if value != "" {
		b.m[key] = value
	}
	return b
}

func (b *metadataBuilder) build() map[string]string {
	return b.m
}
