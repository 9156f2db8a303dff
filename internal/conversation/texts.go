package conversation

const (
	msgWelcome        = "Hello, %s\n\nWelcome to our bot"
	msgHelloAdmin     = "Hello admin %s"
	msgMainMenu       = "Main menu ✅"
	msgUseMenu        = "Please use the menu below."
	msgSomethingWrong = "Something went wrong. Please try again."
)

const (
	msgNoSalons       = "There are no salons at the moment."
	msgChooseSalon    = "Choose a salon:"
	msgSalonNotFound  = "This salon was not found. Please choose another one."
	msgNoFreeBarbers  = "There are no barbers with free time in this salon right now."
	msgChooseBarber   = "Choose a barber:"
	msgBarberNotFound = "This barber was not found. Please choose another one."
	msgBarberNoWork   = "This barber has no services yet. Please choose another barber."

	msgChooseService   = "Please choose a service:"
	msgServiceNotFound = "This service is not offered by the barber. Please choose another one."

	msgNoFreeDays       = "%s has no free days right now. Please try again later."
	msgChooseDate       = "Choose a date:"
	msgDateUnavailable  = "This barber has no free time on that date. Please choose another date."
	msgChooseTime       = "Free times on %s. Choose one:"
	msgTimeUnavailable  = "This time is not available. Please choose another one."
	msgEnterName        = "Enter your name:"
	msgEnterPhone       = "Enter your phone number:"
	msgInvalidPhone     = "Please enter a valid phone number, for example +998901234567."
	msgBookingCancelled = "Booking cancelled."
	msgBookingExpired   = "This booking is no longer active. Please start again."
	msgSlotTaken        = "Sorry, this time has just been taken. Please choose another one."
	msgSelectionGone    = "Your selection is no longer available. Please start again."
	msgUnknownAction    = "Unknown action."
)

const (
	msgSendAdPhoto   = "Send the ad image!"
	msgSendAdCaption = "Send the full ad text!"
	msgNoRecipients  = "Nobody received the ad: there are no users yet."
	msgAdSent        = "Ad sent! Delivered: %d, skipped: %d, failed: %d."
	msgAdQueued      = "Sending the ad. I will report when it is done."
	msgAdminPanel    = "Open the admin panel: %s"
)

const (
	msgSalonCard     = "🌟 %s\n\n📞 Phone: %s\n\n🛠️ Services:\n%s\n\n💇‍♂️ Barbers:\n%s"
	msgNoServices    = "No services yet."
	msgNoBarbersFree = "No barbers with free time."
)
