package domain

import "strings"

type Modality string

const (
	ModalityJudo     Modality = "judo"
	ModalityPilates  Modality = "pilates"
	ModalityPrime    Modality = "prime"
	ModalityMuay     Modality = "muay"
	ModalityKravmaga Modality = "kravmaga"
)

// ModalityInfo descreve uma modalidade e suas capacidades
type ModalityInfo struct {
	Code          Modality `json:"code"`
	Name          string   `json:"name"`
	HasInstructor bool     `json:"has_instructor"`
}

var modalities = []ModalityInfo{
	{Code: ModalityJudo, Name: "Judo", HasInstructor: false},
	{Code: ModalityPilates, Name: "Pilates", HasInstructor: true},
	{Code: ModalityPrime, Name: "Prime", HasInstructor: false},
	{Code: ModalityMuay, Name: "Muay", HasInstructor: true},
	{Code: ModalityKravmaga, Name: "Kravmaga", HasInstructor: true},
}

// Modalities retorna as modalidades conhecidas na ordem de exibição
func Modalities() []ModalityInfo {
	out := make([]ModalityInfo, len(modalities))
	copy(out, modalities)
	return out
}

// ParseModality aceita o código (ou o nome) da modalidade sem diferenciar maiúsculas.
// O código legado "krav" é tratado como kravmaga.
func ParseModality(s string) (Modality, bool) {
	code := strings.ToLower(strings.TrimSpace(s))
	if code == "krav" {
		return ModalityKravmaga, true
	}

	for _, m := range modalities {
		if string(m.Code) == code {
			return m.Code, true
		}
	}

	return "", false
}

func (m Modality) Info() (ModalityInfo, bool) {
	for _, info := range modalities {
		if info.Code == m {
			return info, true
		}
	}
	return ModalityInfo{}, false
}

// HasInstructor indica se a modalidade possui professor atribuído aos contratos
func (m Modality) HasInstructor() bool {
	info, ok := m.Info()
	return ok && info.HasInstructor
}

// DisplayName retorna o nome de exibição, ou o próprio código se desconhecido
func (m Modality) DisplayName() string {
	if info, ok := m.Info(); ok {
		return info.Name
	}
	return string(m)
}
