package materials

import "testing"

func TestMaterialIdsAreUnique(t *testing.T) {

	a, b := getNewMatId(), getNewMatId()
	if a == 0 || a == b {
		t.Fatalf("expected distinct non-zero ids; got %d and %d", a, b)
	}
}

func TestSetTexture(t *testing.T) {

	m := &Material{Name: "quad"}
	m.SetTexture(TextureSlot_Overlay, 7)

	if m.Textures[TextureSlot_Overlay] != 7 || m.Textures[TextureSlot_Diffuse] != 0 {
		t.Fatalf("expected only the overlay slot to be set; got %v", m.Textures)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected setting slot %d to fail", MaxTextureSlots)
		}
	}()

	m.SetTexture(MaxTextureSlots, 1)
}
