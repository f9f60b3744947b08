package domain

// Patient 病人档案（个管师名单，演示环境为静态数据）
type Patient struct {
	PatientID  string `json:"patient_id" db:"patient_id"` // 如 "P001"
	Name       string `json:"name" db:"name"`
	Age        int    `json:"age" db:"age"`
	Surgery    string `json:"surgery" db:"surgery"`         // 手术名称，如 "右上肺葉切除"
	PostOpDay  int    `json:"post_op_day" db:"post_op_day"` // 术后天数 D+N
	Compliance int    `json:"compliance" db:"compliance"`   // 回报顺从度（百分比）
	Status     string `json:"status" db:"status"`           // alert / warning / overdue / normal
	LastReport string `json:"last_report" db:"last_report"` // 最后回报时间（展示用文本）
	Phone      string `json:"phone" db:"phone"`
}
