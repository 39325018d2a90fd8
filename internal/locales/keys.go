package locales

// Message IDs in ru.json.
const (
	MsgAskName               = "MsgAskName"
	MsgNameEmpty             = "MsgNameEmpty"
	MsgWelcomeBack           = "MsgWelcomeBack"
	MsgRegistered            = "MsgRegistered"
	MsgRegistrationCancelled = "MsgRegistrationCancelled"
	MsgRegisterFirst         = "MsgRegisterFirst"
	MsgNoProcesses           = "MsgNoProcesses"
	MsgProcessesHeader       = "MsgProcessesHeader"
	MsgProcessItem           = "MsgProcessItem"
	MsgCheckUsage            = "MsgCheckUsage"
	MsgCheckBadFormat        = "MsgCheckBadFormat"
	MsgRemindersHeader       = "MsgRemindersHeader"
	MsgReminderFirst         = "MsgReminderFirst"
	MsgReminderSecond        = "MsgReminderSecond"
	MsgReminderDeadline      = "MsgReminderDeadline"
	MsgNoActiveReminders     = "MsgNoActiveReminders"
	MsgReminderRowBroken     = "MsgReminderRowBroken"
	MsgExportDone            = "MsgExportDone"
	MsgExportFailed          = "MsgExportFailed"
	MsgErrorGeneral          = "MsgErrorGeneral"
	MsgHelp                  = "MsgHelp"
)
