package models

// Form-specific payloads stored in inscricoes.detalhes.

type ERPIDetails struct {
	DependencyLevel string  `json:"grau_dependencia" binding:"required,oneof=autonomo parcialmente_dependente dependente"`
	Regime          string  `json:"regime" binding:"omitempty,oneof=permanente temporario"`
	Medication      *string `json:"medicacao" binding:"omitempty,max=2000"`
	Allergies       *string `json:"alergias" binding:"omitempty,max=1000"`
	FamilyDoctor    *string `json:"medico_familia" binding:"omitempty,max=255"`
}

type DayCareDetails struct {
	Schedule     string   `json:"horario_pretendido" binding:"required,max=255"`
	Transport    bool     `json:"transporte"`
	Meals        []string `json:"refeicoes" binding:"omitempty,dive,oneof=pequeno_almoco almoco lanche jantar"`
	SpecialNeeds *string  `json:"necessidades_especiais" binding:"omitempty,max=2000"`
}

type HomeCareDetails struct {
	Services  []string `json:"servicos" binding:"required,min=1,dive,oneof=higiene alimentacao limpeza tratamento_roupa acompanhamento"`
	Frequency string   `json:"frequencia" binding:"required,oneof=diaria semanal quinzenal"`
	Notes     *string  `json:"observacoes_servico" binding:"omitempty,max=2000"`
}

type NurseryDetails struct {
	GuardianName  string  `json:"nome_encarregado" binding:"required,max=255"`
	GuardianPhone string  `json:"contacto_encarregado" binding:"required,max=30"`
	GuardianEmail *string `json:"email_encarregado" binding:"omitempty,email"`
	DesiredStart  *string `json:"data_entrada_pretendida" binding:"omitempty,datetime=2006-01-02"`
	SpecialNeeds  *string `json:"necessidades_especiais" binding:"omitempty,max=2000"`
}

// NewDetails returns an empty details value for kind, or nil for an unknown kind.
func (k InscriptionKind) NewDetails() any {
	switch k {
	case InscriptionERPI:
		return &ERPIDetails{}
	case InscriptionDayCare:
		return &DayCareDetails{}
	case InscriptionHomeCare:
		return &HomeCareDetails{}
	case InscriptionNursery:
		return &NurseryDetails{}
	}
	return nil
}
